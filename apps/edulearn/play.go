package main

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/edulearn/apps/player"
	"github.com/trezcool/edulearn/core"
	"github.com/trezcool/edulearn/core/attempt"
)

// promptConfirmer asks yes/no questions on the command line.
type promptConfirmer struct {
	cli *commandLine
}

func (p promptConfirmer) Confirm(msg string) bool {
	answer, _ := p.cli.readLine(msg + " [y/N] ")
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes"
}

// userErrors are reported by the player loop without a toast from the controller.
var userErrors = []error{
	player.ErrLocked,
	player.ErrUnknownAssessment,
	player.ErrNoCourse,
	attempt.ErrNoAttempt,
	attempt.ErrNotInProgress,
	attempt.ErrWrongType,
	attempt.ErrOutOfRange,
	attempt.ErrSubmitCancelled,
}

func isUserError(err error) bool {
	cause := errors.Cause(err)
	for _, e := range userErrors {
		if cause == e {
			return true
		}
	}
	return false
}

func (cli *commandLine) newPlayer(out io.Writer) *player.Controller {
	return player.New(player.Deps{
		Courses:      cli.api.Courses,
		Assessments:  cli.api.Assessments,
		Results:      cli.api.TestResults,
		Session:      cli.session,
		Certificates: cli.certs,
		Confirmer:    promptConfirmer{cli},
		Notifier:     cli.notifier,
		Logger:       cli.logger,
	}, player.NewTerminal(out))
}

func (cli *commandLine) printPlayHelp() {
	cli.printf("Commands:\n")
	cli.printf("  lesson MODULE_ID LESSON_ID - play a lesson\n")
	cli.printf("  start ASSESSMENT_ID - start an unlocked assessment\n")
	cli.printf("  select OPTION [QUESTION] - answer the current (or given) question, 1-based\n")
	cli.printf("  next | prev | goto QUESTION - navigate the quiz\n")
	cli.printf("  submit - submit the quiz\n")
	cli.printf("  answer TEXT - submit the assignment\n")
	cli.printf("  close - close the assessment\n")
	cli.printf("  certificate - generate the course certificate\n")
	cli.printf("  reload | help | quit\n")
}

// play runs the interactive course player until `quit` or the end of input.
func (cli *commandLine) play(courseID string) error {
	ctx := context.Background()
	ctrl := cli.newPlayer(cli.out)
	defer ctrl.Runtime().Close()

	if err := ctrl.LoadCourse(ctx, courseID); err != nil {
		return err
	}
	cli.printf("\nType `help` for commands.\n")

	for {
		line, ok := cli.readLine("> ")
		if !ok {
			return nil
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "quit" || fields[0] == "exit" {
			return nil
		}
		if err := cli.playCommand(ctx, ctrl, fields[0], fields[1:], line); err != nil {
			if isUserError(err) {
				cli.notifier.Toast(core.ToastError, capitalize(errors.Cause(err).Error()))
			}
			if core.IsAuthMissing(err) {
				return err
			}
		}
	}
}

func (cli *commandLine) playCommand(ctx context.Context, ctrl *player.Controller, cmd string, args []string, line string) error {
	switch cmd {
	case "help":
		cli.printPlayHelp()
	case "reload":
		return ctrl.LoadCourse(ctx, currentCourseID(ctrl))
	case "lesson":
		if len(args) != 2 {
			cli.printPlayHelp()
			return nil
		}
		if _, found := ctrl.PlayLesson(args[0], args[1]); !found {
			cli.printf("No such lesson\n")
		}
	case "start":
		if len(args) != 1 {
			cli.printPlayHelp()
			return nil
		}
		return ctrl.StartAssessment(ctx, args[0])
	case "select":
		if len(args) < 1 || len(args) > 2 {
			cli.printPlayHelp()
			return nil
		}
		opt, err := strconv.Atoi(args[0])
		if err != nil {
			return attempt.ErrOutOfRange
		}
		q, err := currentQuestion(ctrl)
		if err != nil {
			return err
		}
		if len(args) == 2 {
			if q, err = strconv.Atoi(args[1]); err != nil {
				return attempt.ErrOutOfRange
			}
			q--
		}
		return ctrl.SelectOption(q, opt-1)
	case "next":
		return ctrl.NextQuestion(ctx)
	case "prev":
		return ctrl.PreviousQuestion()
	case "goto":
		if len(args) != 1 {
			cli.printPlayHelp()
			return nil
		}
		q, err := strconv.Atoi(args[0])
		if err != nil {
			return attempt.ErrOutOfRange
		}
		return ctrl.GoToQuestion(q - 1)
	case "submit":
		_, err := ctrl.SubmitQuiz(ctx)
		return err
	case "answer":
		return ctrl.SubmitAssignment(ctx, strings.TrimSpace(strings.TrimPrefix(line, cmd)))
	case "close":
		return ctrl.CloseAssessment(ctx)
	case "certificate":
		path, err := ctrl.GenerateCertificate(ctx)
		if err != nil {
			return err
		}
		cli.printf("Saved %s\n", path)
	default:
		cli.printf("Unknown command %q\n", cmd)
		cli.printPlayHelp()
	}
	return nil
}

func currentCourseID(ctrl *player.Controller) string {
	s, _ := ctrl.Summary()
	return s.Course.ID
}

func currentQuestion(ctrl *player.Controller) (int, error) {
	qv, err := ctrl.Runtime().Question()
	return qv.Index, err
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
