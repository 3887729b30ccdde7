package utils

import (
	"community-bot/models"

	"github.com/bwmarrin/discordgo"
)

// Auth provides methods for authorization checks.
type Auth struct {
	config models.CommandsConfig
}

// NewAuth creates a new Auth instance with the loaded configuration.
func NewAuth(config models.CommandsConfig) *Auth {
	return &Auth{config: config}
}

// IsDeveloper checks if a user is a developer.
func (a *Auth) IsDeveloper(userID string) bool {
	for _, devID := range a.config.Auth.Developers {
		if userID == devID {
			return true
		}
	}
	return false
}

// IsAdmin checks if a user has an admin role.
func (a *Auth) IsAdmin(member *discordgo.Member) bool {
	for _, adminRoleID := range a.config.Auth.AdminsRoles {
		for _, userRoleID := range member.Roles {
			if userRoleID == adminRoleID {
				return true
			}
		}
	}
	return false
}

// CheckPermission checks if a user has the required permission level.
func (a *Auth) CheckPermission(i *discordgo.InteractionCreate, requiredLevel string) bool {
	if i.Member == nil || i.Member.User == nil {
		return false
	}

	switch requiredLevel {
	case "developer":
		return a.IsDeveloper(i.Member.User.ID)
	case "admin":
		return a.IsDeveloper(i.Member.User.ID) || a.IsAdmin(i.Member)
	case "guest":
		return true // Guests are allowed
	default:
		return false
	}
}
