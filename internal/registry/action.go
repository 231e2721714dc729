package registry

import (
	"fmt"
	"strings"

	"github.com/jacksparrot/jsp/internal/messages"
)

// Action is what should happen to a package.
type Action string

const (
	// ActionInstall installs a package that is not present locally.
	ActionInstall Action = "install"
	// ActionUpdate replaces an installed package whose revision differs from the manifest.
	ActionUpdate Action = "update"
	// ActionRemove uninstalls a package. It is only ever requested by a user.
	ActionRemove Action = "remove"
	// ActionNone means the installed package matches the manifest.
	ActionNone Action = "none"
)

// ResolveAction maps a status to the action it calls for.
// Remove is never returned; it is an explicit user command.
func ResolveAction(status PackageStatus) Action {
	switch {
	case !status.Installed:
		return ActionInstall
	case !status.UpToDate:
		return ActionUpdate
	default:
		return ActionNone
	}
}

// AvailableActions lists every action a user may request for status:
// the resolved action (unless none) followed by remove for installed packages.
func AvailableActions(status PackageStatus) []Action {
	actions := make([]Action, 0, 2)
	if resolved := ResolveAction(status); resolved != ActionNone {
		actions = append(actions, resolved)
	}
	if status.Installed {
		actions = append(actions, ActionRemove)
	}
	return actions
}

// ParseAction converts user input into an Action.
func ParseAction(raw string) (Action, error) {
	switch Action(strings.ToLower(strings.TrimSpace(raw))) {
	case ActionInstall:
		return ActionInstall, nil
	case ActionUpdate:
		return ActionUpdate, nil
	case ActionRemove:
		return ActionRemove, nil
	case ActionNone:
		return ActionNone, nil
	}
	return "", fmt.Errorf(messages.RegistryUnknownActionFmt, raw)
}
