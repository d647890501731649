package terminal

import (
	"bufio"
	"context"
	"io"
	"strconv"
	"strings"

	"quiz-trainer/internal/app"
	"quiz-trainer/internal/domain"
)

const help = `commands:
  s [count|all] [minutes]  start a quiz
  1..9                     pick an option
  n / p                    next / previous question
  f                        finish
  m                        retry mistakes
  r                        upload the file again
  q                        quit
`

// Run uploads the file and then drives the controller from line commands
// until q or end of input.
func Run(ctx context.Context, c *app.Controller, view *View, in io.Reader, filename string, content []byte) error {
	if err := c.Upload(ctx, filename, content); err != nil {
		return err
	}
	defer c.Close()

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch cmd := fields[0]; cmd {
		case "q":
			return nil
		case "h", "?":
			view.printf(help)
		case "s":
			c.Start(settingsInput(fields[1:]))
		case "n":
			c.Next()
		case "p":
			c.Prev()
		case "f":
			c.Finish()
		case "m":
			if !c.RetryMistakes() && c.State().Stage == app.StageResults {
				view.printf("no mistakes to retry\n")
			}
		case "r":
			c.Restart()
			if err := c.Upload(ctx, filename, content); err != nil {
				return err
			}
		default:
			n, err := strconv.Atoi(cmd)
			if err != nil {
				view.printf("unknown command %q, h for help\n", cmd)
				continue
			}
			q, idx, ok := view.option(n)
			if !ok {
				view.printf("no option %d\n", n)
				continue
			}
			c.Select(q.QuestionID, q.Options[idx].ID)
		}
	}
	return scanner.Err()
}

func settingsInput(args []string) domain.SettingsInput {
	in := domain.SettingsInput{UseAll: true}
	if len(args) > 0 && args[0] != "all" {
		in.UseAll = false
		in.Count = args[0]
	}
	if len(args) > 1 {
		in.TimeLimitMinutes = args[1]
	}
	return in
}
