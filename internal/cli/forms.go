package cli

import (
	"fmt"
	"net/mail"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/vocuz/vocuz/internal/auth"
	"github.com/vocuz/vocuz/internal/cli/formatter"
	"github.com/vocuz/vocuz/internal/domain"
)

// huhTheme follows the active formatter palette.
func huhTheme() *huh.Theme {
	t := huh.ThemeBase()

	accent := lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	fg := lipgloss.NewStyle().Foreground(formatter.ColorFg)
	dim := lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Focused.Title = accent.Bold(true)
	t.Focused.Description = dim
	t.Focused.SelectSelector = accent
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = fg
	t.Focused.FocusedButton = fg.Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = dim.Padding(0, 1)
	t.Focused.TextInput.Cursor = accent
	t.Focused.TextInput.Prompt = accent
	t.Focused.TextInput.Text = fg
	t.Focused.TextInput.Placeholder = dim
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	t.Blurred.Title = dim
	t.Blurred.SelectSelector = dim
	t.Blurred.SelectedOption = dim
	t.Blurred.UnselectedOption = dim
	t.Blurred.TextInput.Prompt = dim
	t.Blurred.TextInput.Text = dim

	return t
}

func confirm(title string) (bool, error) {
	var ok bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().Title(title).Affirmative("Yes").Negative("No").Value(&ok),
		),
	).WithTheme(huhTheme()).WithShowHelp(false).Run()
	return ok, err
}

// askSignUp fills the blank fields of in.
func askSignUp(in *auth.SignUpInput) error {
	var fields []huh.Field
	if in.FullName == "" {
		fields = append(fields, huh.NewInput().Title("Full name").Placeholder("Optional").Value(&in.FullName))
	}
	if in.Email == "" {
		fields = append(fields, huh.NewInput().Title("Email").Value(&in.Email).Validate(validateEmail))
	}
	if in.Password == "" {
		fields = append(fields, huh.NewInput().
			Title("Password").
			Description(fmt.Sprintf("At least %d characters", auth.MinPasswordLen)).
			EchoMode(huh.EchoModePassword).
			Value(&in.Password).
			Validate(validatePassword))
	}
	if len(fields) == 0 {
		return nil
	}
	return huh.NewForm(huh.NewGroup(fields...)).WithTheme(huhTheme()).WithShowHelp(false).Run()
}

// askLogin fills a blank email or password.
func askLogin(email, password *string) error {
	var fields []huh.Field
	if *email == "" {
		fields = append(fields, huh.NewInput().Title("Email").Value(email).Validate(validateEmail))
	}
	if *password == "" {
		fields = append(fields, huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(password))
	}
	if len(fields) == 0 {
		return nil
	}
	return huh.NewForm(huh.NewGroup(fields...)).WithTheme(huhTheme()).WithShowHelp(false).Run()
}

// askTimerSettings edits the three durations in place.
func askTimerSettings(s *domain.TimerSettings) error {
	focus, short, long := strconv.Itoa(s.Focus), strconv.Itoa(s.ShortBreak), strconv.Itoa(s.LongBreak)
	err := huh.NewForm(
		huh.NewGroup(
			minutesInput(domain.ModeFocus.Label(), &focus),
			minutesInput(domain.ModeShort.Label(), &short),
			minutesInput(domain.ModeLong.Label(), &long),
		),
	).WithTheme(huhTheme()).WithShowHelp(false).Run()
	if err != nil {
		return err
	}
	s.Focus, _ = strconv.Atoi(focus)
	s.ShortBreak, _ = strconv.Atoi(short)
	s.LongBreak, _ = strconv.Atoi(long)
	return nil
}

func minutesInput(title string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title + " (minutes)").
		Value(value).
		Validate(validateMinutes)
}

func validateMinutes(s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 1 || v > domain.MaxDurationMin {
		return fmt.Errorf("enter a number between 1 and %d", domain.MaxDurationMin)
	}
	return nil
}

func validateEmail(s string) error {
	if _, err := mail.ParseAddress(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("enter a valid email address")
	}
	return nil
}

func validatePassword(s string) error {
	if len(s) < auth.MinPasswordLen {
		return auth.ErrWeakPassword
	}
	return nil
}
