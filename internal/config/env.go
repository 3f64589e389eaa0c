package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Credential environment variables. A set variable always wins over the
// file; whitespace-only values count as unset.
const (
	EnvPracticumToken = "PRACTICUM_TOKEN"
	EnvTelegramToken  = "TELEGRAM_TOKEN"
	EnvTelegramChatID = "TELEGRAM_CHAT_ID"
)

func applyEnvOverrides(cfg *Config) error {
	if v := strings.TrimSpace(os.Getenv(EnvPracticumToken)); v != "" {
		cfg.Practicum.Token = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvTelegramToken)); v != "" {
		cfg.Telegram.Token = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvTelegramChatID)); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: not an integer: %q", EnvTelegramChatID, v)
		}
		cfg.Telegram.ChatID = id
	}
	return nil
}

// MissingCredentialError lists every absent credential, not just the first,
// so one failed start names the whole fix.
type MissingCredentialError struct {
	Names []string
}

func (e *MissingCredentialError) Error() string {
	return "missing required credentials: " + strings.Join(e.Names, ", ")
}

// CheckCredentials verifies the secrets the bot cannot run without. Call it
// after Load, before building anything that talks to the network. Missing
// entries are reported by their environment variable names.
func (c *Config) CheckCredentials() error {
	var missing []string
	if strings.TrimSpace(c.Practicum.Token) == "" {
		missing = append(missing, EnvPracticumToken)
	}
	if strings.TrimSpace(c.Telegram.Token) == "" {
		missing = append(missing, EnvTelegramToken)
	}
	if c.Telegram.ChatID == 0 {
		missing = append(missing, EnvTelegramChatID)
	}
	if len(missing) > 0 {
		return &MissingCredentialError{Names: missing}
	}
	return nil
}
