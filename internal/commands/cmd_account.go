package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/feedboard/internal/core/identity"
	"github.com/colonyops/feedboard/internal/core/styles"
	"github.com/colonyops/feedboard/internal/printer"
	"github.com/colonyops/feedboard/pkg/iojson"
)

var errNotSignedIn = errors.New("not signed in; run 'feedboard login' first")

type AccountCmd struct {
	flags *Flags

	email    string
	name     string
	password string
	token    string

	jsonOutput bool
}

// NewAccountCmd creates the login, register, logout and whoami commands.
func NewAccountCmd(flags *Flags) *AccountCmd {
	return &AccountCmd{flags: flags}
}

// Register adds the account commands to the application.
func (cmd *AccountCmd) Register(app *cli.Command) *cli.Command {
	passwordFlag := &cli.StringFlag{
		Name:        "password",
		Usage:       "account password (prompted for when omitted)",
		Sources:     cli.EnvVars("FEEDBOARD_PASSWORD"),
		Destination: &cmd.password,
	}
	emailFlag := &cli.StringFlag{
		Name:        "email",
		Aliases:     []string{"e"},
		Usage:       "account email",
		Destination: &cmd.email,
	}

	app.Commands = append(app.Commands,
		&cli.Command{
			Name:      "login",
			Usage:     "Sign in and store the session",
			UsageText: "feedboard login [--email <e>] [--password <p>] | --token <t>",
			Description: `Signs in with email and password, or stores an existing token
issued by the server. The session is kept in <data-dir>/session.json.`,
			Flags: []cli.Flag{
				emailFlag,
				passwordFlag,
				&cli.StringFlag{
					Name:        "token",
					Usage:       "store an existing API token instead of signing in",
					Destination: &cmd.token,
				},
			},
			Action: cmd.runLogin,
		},
		&cli.Command{
			Name:      "register",
			Usage:     "Create an account and sign in",
			UsageText: "feedboard register --name <n> --email <e> [--password <p>]",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:        "name",
					Usage:       "display name",
					Destination: &cmd.name,
				},
				emailFlag,
				passwordFlag,
			},
			Action: cmd.runRegister,
		},
		&cli.Command{
			Name:   "logout",
			Usage:  "Revoke the session token and forget it",
			Action: cmd.runLogout,
		},
		&cli.Command{
			Name:  "whoami",
			Usage: "Show the signed in user",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:        "json",
					Usage:       "output as JSON",
					Destination: &cmd.jsonOutput,
				},
			},
			Action: cmd.runWhoami,
		},
	)
	return app
}

func (cmd *AccountCmd) runLogin(ctx context.Context, _ *cli.Command) error {
	p := printer.Ctx(ctx)

	if cmd.token != "" {
		return cmd.storeToken(ctx, p)
	}

	if err := cmd.promptMissing(false); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		return err
	}

	creds, err := cmd.flags.Backend.Login(ctx, strings.TrimSpace(cmd.email), cmd.password)
	if err != nil {
		return commandError(err, "Login failed. Please check your credentials.")
	}

	p.Success("Signed in", creds.User.DisplayName)
	return nil
}

// storeToken saves a token and resolves its user through the backend. The
// session is cleared again when the token is rejected.
func (cmd *AccountCmd) storeToken(ctx context.Context, p *printer.Printer) error {
	session := cmd.flags.Session
	if err := session.Set(identity.Credentials{Token: cmd.token}); err != nil {
		return err
	}

	user, err := cmd.flags.Backend.CurrentUser(ctx)
	if err != nil {
		_ = session.Clear()
		return commandError(err, "The token was rejected.")
	}

	if err := session.Set(identity.Credentials{Token: cmd.token, User: user.Actor()}); err != nil {
		return err
	}

	p.Success("Signed in", user.Name)
	return nil
}

func (cmd *AccountCmd) runRegister(ctx context.Context, _ *cli.Command) error {
	if err := cmd.promptMissing(true); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		return err
	}

	reg := identity.Registration{
		Name:                 cmd.name,
		Email:                cmd.email,
		Password:             cmd.password,
		PasswordConfirmation: cmd.password,
	}
	if err := reg.Validate(); err != nil {
		return err
	}

	creds, err := cmd.flags.Backend.Register(ctx, reg)
	if err != nil {
		return commandError(err, "Registration failed. Please try again.")
	}

	printer.Ctx(ctx).Success("Account created", creds.User.DisplayName)
	return nil
}

// promptMissing asks for the account fields that were not passed as flags.
func (cmd *AccountCmd) promptMissing(withName bool) error {
	var fields []huh.Field
	if withName && cmd.name == "" {
		fields = append(fields, huh.NewInput().Title("Name").Value(&cmd.name))
	}
	if cmd.email == "" {
		fields = append(fields, huh.NewInput().Title("Email").Value(&cmd.email))
	}
	if cmd.password == "" {
		fields = append(fields, huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&cmd.password))
	}
	if len(fields) == 0 {
		return nil
	}
	if !isInteractive() {
		return errNotInteractive
	}

	return huh.NewForm(huh.NewGroup(fields...)).WithTheme(styles.FormTheme()).Run()
}

func (cmd *AccountCmd) runLogout(ctx context.Context, _ *cli.Command) error {
	p := printer.Ctx(ctx)

	if cmd.flags.Session.Token() == "" {
		p.Infof("Not signed in")
		return nil
	}

	if err := cmd.flags.Backend.Logout(ctx); err != nil {
		return commandError(err, "Logout failed.")
	}

	p.Successf("Signed out")
	return nil
}

func (cmd *AccountCmd) runWhoami(ctx context.Context, c *cli.Command) error {
	if cmd.flags.Session.Token() == "" {
		return errNotSignedIn
	}

	user, err := cmd.flags.Backend.CurrentUser(ctx)
	if err != nil {
		return commandError(err, "Could not load the current user.")
	}

	if cmd.jsonOutput {
		return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, user)
	}

	p := printer.Ctx(ctx)
	p.Printf("%s <%s>", user.Name, user.Email)
	p.Printf("role: %s", user.Actor().Role)
	return nil
}
