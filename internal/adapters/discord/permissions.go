package discord

import (
	"fmt"
	"slices"
	"strings"

	"github.com/example/escalate/internal/config"
)

// Level is a member's permission level. Higher levels include lower ones.
type Level int

const (
	LevelRegular Level = iota
	LevelSupporter
	LevelModerator
	LevelAdministrator
	LevelOwner
)

func (l Level) String() string {
	switch l {
	case LevelRegular:
		return "regular"
	case LevelSupporter:
		return "supporter"
	case LevelModerator:
		return "moderator"
	case LevelAdministrator:
		return "administrator"
	case LevelOwner:
		return "owner"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// ParseLevel parses a level name. An empty name is LevelRegular.
func ParseLevel(name string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "regular":
		return LevelRegular, nil
	case "supporter":
		return LevelSupporter, nil
	case "moderator":
		return LevelModerator, nil
	case "administrator":
		return LevelAdministrator, nil
	case "owner":
		return LevelOwner, nil
	default:
		return LevelRegular, fmt.Errorf("unknown permission level %q", name)
	}
}

// Permissions maps users and roles to levels.
type Permissions struct {
	owners []string
	levels []levelIDs // highest first
}

type levelIDs struct {
	level Level
	ids   []string
}

// NewPermissions builds the level table from the bot config.
func NewPermissions(cfg *config.Config) *Permissions {
	return &Permissions{
		owners: cfg.Owners,
		levels: []levelIDs{
			{LevelAdministrator, cfg.Permissions.Administrator},
			{LevelModerator, cfg.Permissions.Moderator},
			{LevelSupporter, cfg.Permissions.Supporter},
		},
	}
}

// LevelOf returns the highest level granted to the user directly or through
// any of their roles.
func (p *Permissions) LevelOf(userID string, roleIDs []string) Level {
	if slices.Contains(p.owners, userID) {
		return LevelOwner
	}
	for _, l := range p.levels {
		if slices.Contains(l.ids, userID) {
			return l.level
		}
		for _, r := range roleIDs {
			if slices.Contains(l.ids, r) {
				return l.level
			}
		}
	}
	return LevelRegular
}
