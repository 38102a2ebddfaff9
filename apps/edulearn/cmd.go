package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/trezcool/edulearn/core"
	"github.com/trezcool/edulearn/core/certificate"
	"github.com/trezcool/edulearn/core/session"
	apisvc "github.com/trezcool/edulearn/services/api"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	conf     *core.Config
	api      *apisvc.Client
	session  *session.Store
	certs    *certificate.Flow
	logger   core.Logger
	notifier core.Notifier

	in  *bufio.Scanner
	out io.Writer
}

func newCommandLine(conf *core.Config, sess *session.Store, logger core.Logger, notifier core.Notifier, in io.Reader, out io.Writer) *commandLine {
	api := apisvc.New(conf, sess)
	return &commandLine{
		conf:     conf,
		api:      api,
		session:  sess,
		certs:    certificate.NewFlow(api.Certificates, logger, conf.DownloadDir),
		logger:   logger,
		notifier: notifier,
		in:       bufio.NewScanner(in),
		out:      out,
	}
}

func (cli *commandLine) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(cli.out, format, args...)
}

func (cli *commandLine) printUsage() {
	cli.printf("Usage:\n")
	cli.printf("  login -email EMAIL - log in; the password will be prompted\n")
	cli.printf("  signup -role student|teacher|admin -name NAME -email EMAIL [-subject S -qualification Q -experience E] - create an account\n")
	cli.printf("  logout - forget the session\n")
	cli.printf("  whoami [-refresh] - show the logged in user\n")
	cli.printf("  courses [-mine] - list courses\n")
	cli.printf("  play -course ID - open the course player\n")
	cli.printf("  certificates - list your certificates\n")
	cli.printf("  verify -id CERTIFICATE_ID | -code VERIFICATION_CODE - verify a certificate\n")
	cli.printf("  admin users [-page N -limit N -role ROLE -search Q] | stats | deactivate -id ID\n")
	cli.printf("  messages conversations | read -id ID | send -to ID -text TEXT | unread | search -q QUERY\n")
}

func (cli *commandLine) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cli.out)
	return fs
}

// parse parses `args` into `fs`, turning -h into errHelp.
func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return errHelp
		}
		return err
	}
	return nil
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	loginCmd := cli.flagSet("login")
	loginEmail := loginCmd.String("email", "", "The account email. The password will be prompted next.")

	signupCmd := cli.flagSet("signup")
	signupRole := signupCmd.String("role", "student", "student, teacher or admin")
	signupName := signupCmd.String("name", "", "Full name")
	signupEmail := signupCmd.String("email", "", "Email")
	signupSubject := signupCmd.String("subject", "", "Subject taught (teachers)")
	signupQualification := signupCmd.String("qualification", "", "Highest qualification (teachers)")
	signupExperience := signupCmd.String("experience", "", "Teaching experience (teachers)")

	whoamiCmd := cli.flagSet("whoami")
	whoamiRefresh := whoamiCmd.Bool("refresh", false, "Fetch the user from the server")

	coursesCmd := cli.flagSet("courses")
	coursesMine := coursesCmd.Bool("mine", false, "Only list your courses")

	playCmd := cli.flagSet("play")
	playCourse := playCmd.String("course", "", "The course ID")

	verifyCmd := cli.flagSet("verify")
	verifyID := verifyCmd.String("id", "", "The certificate ID")
	verifyCode := verifyCmd.String("code", "", "The verification code")

	switch args[1] {
	case "login":
		if err := parse(loginCmd, args[2:]); err != nil {
			return err
		}
		if *loginEmail == "" {
			loginCmd.Usage()
			return errHelp
		}
		pwd, err := cli.readPassword("Enter password:")
		if err != nil {
			return err
		}
		if pwd == "" {
			loginCmd.Usage()
			return errHelp
		}
		return cli.login(*loginEmail, pwd)
	case "signup":
		if err := parse(signupCmd, args[2:]); err != nil {
			return err
		}
		if *signupName == "" || *signupEmail == "" {
			signupCmd.Usage()
			return errHelp
		}
		pwd, err := cli.readPassword("Enter password:")
		if err != nil {
			return err
		}
		confirm, err := cli.readPassword("Confirm password:")
		if err != nil {
			return err
		}
		return cli.signup(signupForm{
			role:          *signupRole,
			name:          *signupName,
			email:         *signupEmail,
			password:      pwd,
			confirm:       confirm,
			subject:       *signupSubject,
			qualification: *signupQualification,
			experience:    *signupExperience,
		})
	case "logout":
		return cli.logout()
	case "whoami":
		if err := parse(whoamiCmd, args[2:]); err != nil {
			return err
		}
		return cli.whoami(*whoamiRefresh)
	case "courses":
		if err := parse(coursesCmd, args[2:]); err != nil {
			return err
		}
		return cli.listCourses(*coursesMine)
	case "play":
		if err := parse(playCmd, args[2:]); err != nil {
			return err
		}
		if *playCourse == "" {
			playCmd.Usage()
			return errHelp
		}
		return cli.play(*playCourse)
	case "certificates":
		return cli.listCertificates()
	case "verify":
		if err := parse(verifyCmd, args[2:]); err != nil {
			return err
		}
		if *verifyID == "" && *verifyCode == "" {
			verifyCmd.Usage()
			return errHelp
		}
		return cli.verify(*verifyID, *verifyCode)
	case "admin":
		return cli.admin(args[2:])
	case "messages":
		return cli.messages(args[2:])
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) readPassword(prompt string) (string, error) {
	cli.printf("%s", prompt)
	pwd, err := readPasswordFunc(int(syscall.Stdin))
	cli.printf("\n")
	if err != nil {
		return "", err
	}
	return string(pwd), nil
}

// readLine reads the next input line, returning false at the end of input.
func (cli *commandLine) readLine(prompt string) (string, bool) {
	cli.printf("%s", prompt)
	if !cli.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(cli.in.Text()), true
}
