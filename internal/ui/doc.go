// Package ui implements the interactive terminal prompts of the CLI using bubbletea's Elm architecture.
//
// The [CredentialsModel] collects the admin username, a password with hidden echo, and its
// confirmation. It implements bubbletea's standard Init/Update/View pattern; [PromptCredentials]
// runs it as a program and returns the entered [Credentials].
//
// Keyboard navigation uses tab/shift+tab (or ↑/↓) between fields, enter to advance or submit, and
// esc/ctrl+c to cancel, with contextual help displayed via charmbracelet/bubbles/help.
package ui
