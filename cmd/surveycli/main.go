// Command surveycli runs the EatWise onboarding survey against the API from a terminal.
//
//	surveycli login -email you@example.com
//	surveycli run -script answers.json
//	surveycli status
//	surveycli behaviors -ids 3,7
//	surveycli logout
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	config "eatwise/configs"
	"eatwise/internal/survey"
	"eatwise/pkg/logger"
	"eatwise/pkg/surveyclient"
)

const usage = `usage: surveycli <command> [flags]

commands:
  login      sign in and store the token
  run        answer the survey from a JSON script
  status     show whether the survey and behaviors were submitted
  behaviors  replace the tracked behaviors (at most 3)
  logout     forget the stored token
`

type app struct {
	cfg    *config.ClientConfig
	client *surveyclient.Client
	tokens *surveyclient.FileTokenStore
	log    *logger.Logger
	out    io.Writer
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg := config.LoadClientConfig()
	mode := "prod"
	if os.Getenv("EATWISE_DEBUG") != "" {
		mode = "dev"
	}
	log, err := logger.New(mode)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer log.Sync()

	a := &app{
		cfg:    cfg,
		client: surveyclient.New(cfg.ServerURL, cfg.HTTPTimeout, surveyclient.WithLogger(log)),
		tokens: surveyclient.NewFileTokenStore(cfg.TokenFile),
		log:    log,
		out:    os.Stdout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.dispatch(ctx, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		if errors.Is(err, survey.ErrUnauthenticated) {
			fmt.Fprintln(os.Stderr, "run `surveycli login` to sign in again")
		}
		os.Exit(1)
	}
}

func (a *app) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "login":
		return a.login(ctx, args)
	case "run":
		return a.run(ctx, args)
	case "status":
		return a.status(ctx)
	case "behaviors":
		return a.behaviors(ctx, args)
	case "logout":
		return a.tokens.Clear()
	case "help", "-h", "--help":
		fmt.Fprint(a.out, usage)
		return nil
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", os.Getenv("EATWISE_PASSWORD"), "account password (read from stdin when empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" {
		return errors.New("login: -email is required")
	}
	if *password == "" {
		fmt.Fprint(a.out, "password: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("login: read password: %w", err)
		}
		*password = strings.TrimSpace(line)
	}

	token, err := a.client.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	if err := a.tokens.Save(token); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "signed in")
	return nil
}

func (a *app) run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	path := fs.String("script", "-", "JSON script with answers, behaviors and high_priority ('-' for stdin)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	in := io.Reader(os.Stdin)
	if *path != "-" {
		f, err := os.Open(*path)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	script, err := ParseScript(in)
	if err != nil {
		return err
	}

	c := survey.NewController(survey.Dependencies{
		Questions: a.client,
		Behaviors: a.client,
		Submitter: a.client,
		Tokens:    a.tokens,
	}, a.log)
	if err := c.Load(ctx); err != nil {
		return err
	}

	state, err := script.Run(ctx, c)
	if err != nil {
		return err
	}
	if state != survey.StateSuccess {
		return fmt.Errorf("survey ended in state %s", state)
	}
	fmt.Fprintln(a.out, "survey submitted")
	return nil
}

func (a *app) status(ctx context.Context) error {
	token, ok := a.tokens.Token()
	if !ok {
		return survey.ErrUnauthenticated
	}
	submitted, err := a.client.CheckSubmission(ctx, token)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "survey submitted: %t\n", submitted)

	rows, err := a.client.UserBehaviors(ctx, token)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Fprintln(a.out, "no behaviors selected")
		return nil
	}
	for _, r := range rows {
		mark := " "
		if r.HighPriority {
			mark = "*"
		}
		fmt.Fprintf(a.out, "%s %d %s\n", mark, r.BehaviorID, r.BehaviorTitle)
	}
	return nil
}

func (a *app) behaviors(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("behaviors", flag.ContinueOnError)
	raw := fs.String("ids", "", "comma separated behavior ids")
	if err := fs.Parse(args); err != nil {
		return err
	}
	ids, err := parseIDs(*raw)
	if err != nil {
		return err
	}

	u := survey.NewBehaviorUpdate(a.client, a.client, a.tokens, a.log)
	catalog, err := u.Load(ctx)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		for _, b := range catalog {
			fmt.Fprintf(a.out, "%d %s: %s\n", b.ID, b.BehaviorTitle, b.Description)
		}
		return nil
	}
	for _, id := range ids {
		changed, err := u.Toggle(id)
		if err != nil {
			return err
		}
		if !changed {
			return fmt.Errorf("at most %d behaviors can be tracked", survey.MaxDirectBehaviors)
		}
	}
	if err := u.Submit(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "behaviors updated")
	return nil
}

func parseIDs(raw string) ([]int, error) {
	var ids []int
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("bad behavior id %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
