package ui

import (
	"github.com/AlecAivazis/survey/v2"

	"github.com/byterings/hubswitch/internal/git"
)

// PromptProfileChoice asks the user to pick one profile from the list.
// Returns the chosen index.
func PromptProfileChoice(message string, profiles []git.IdentityProfile) (int, error) {
	options := make([]string, len(profiles))
	for i, p := range profiles {
		options[i] = p.DisplayLabel()
	}

	var choice int
	prompt := &survey.Select{
		Message: message,
		Options: options,
	}
	if err := survey.AskOne(prompt, &choice); err != nil {
		return 0, err
	}
	return choice, nil
}

// PromptProfileInfo prompts for a profile's name and email. Either may be
// left empty, but not both.
func PromptProfileInfo() (git.IdentityProfile, error) {
	var profile git.IdentityProfile

	namePrompt := &survey.Input{
		Message: "Name:",
		Help:    "Display name for git commits (e.g., Jane Doe) - may be empty",
	}
	if err := survey.AskOne(namePrompt, &profile.Name); err != nil {
		return git.IdentityProfile{}, err
	}

	emailPrompt := &survey.Input{
		Message: "Email:",
		Help:    "Email for git commits (e.g., jane@example.com) - may be empty",
	}
	if err := survey.AskOne(emailPrompt, &profile.Email); err != nil {
		return git.IdentityProfile{}, err
	}

	return profile, nil
}

// PromptConfirmation prompts for yes/no confirmation
func PromptConfirmation(message string) (bool, error) {
	var confirmed bool
	prompt := &survey.Confirm{
		Message: message,
		Default: false,
	}
	if err := survey.AskOne(prompt, &confirmed); err != nil {
		return false, err
	}
	return confirmed, nil
}
