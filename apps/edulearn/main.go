package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/trezcool/edulearn/core"
	"github.com/trezcool/edulearn/core/session"
	logsvc "github.com/trezcool/edulearn/services/logger"
	notifysvc "github.com/trezcool/edulearn/services/notify"
)

func main() {
	conf := core.NewConfig()

	var logOut io.Writer = io.Discard
	if conf.Debug {
		logOut = os.Stderr
	}
	logger := logsvc.NewRollbarLogger(log.New(logOut, conf.AppName+" : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile), conf)

	sess, err := session.Open(conf.SessionFile)
	if err != nil {
		logger.Error(fmt.Sprintf("opening session: %v", err), err)
		logger.Close()
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}

	// start CLI
	cli := newCommandLine(conf, sess, logger, notifysvc.NewConsoleNotifier(os.Stdout, logger), os.Stdin, os.Stdout)
	err = cli.run(os.Args)
	logger.Close()
	if err != nil {
		if err != errHelp {
			fmt.Fprintf(os.Stderr, "\nerror: %s\n", err)
			if core.IsAuthMissing(err) {
				fmt.Fprintf(os.Stderr, "run `%s login -email EMAIL` first\n", os.Args[0])
			}
		}
		os.Exit(1)
	}
}
