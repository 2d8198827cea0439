package config

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Config represents the entire user configuration file.
type Config struct {
	Version       int             `yaml:"version"`
	Preferences   *Preferences    `yaml:"preferences,omitempty"`
	Account       *Account        `yaml:"account,omitempty"`
	LinkedDevices []*LinkedDevice `yaml:"linked_devices,omitempty"`

	// path is where the config was loaded from and where Save writes.
	path string
}

// Preferences represents application-wide user preferences.
type Preferences struct {
	Theme            string `yaml:"theme"`                      // auto, dark or light
	TextScale        int    `yaml:"text_scale"`                 // 1 = normal, 2 = large text
	LogLevel         string `yaml:"log_level,omitempty"`        // empty disables logging
	Pasteboard       string `yaml:"pasteboard,omitempty"`       // auto, system or memory
	AvailabilityURL  string `yaml:"availability_url,omitempty"` // ws:// URL; empty checks locally
	ReadReceipts     bool   `yaml:"read_receipts"`
	TypingIndicators bool   `yaml:"typing_indicators"`
}

// Account holds the claimed username.
type Account struct {
	Username      string `yaml:"username,omitempty"`
	Discriminator string `yaml:"discriminator,omitempty"`
}

// Handle returns "username.discriminator", or just the username when no
// discriminator has been assigned.
func (a *Account) Handle() string {
	if a == nil || a.Username == "" {
		return ""
	}
	if a.Discriminator == "" {
		return a.Username
	}
	return a.Username + "." + a.Discriminator
}

// LinkedDevice is another device signed in to the same account.
type LinkedDevice struct {
	ID       string    `yaml:"id"`
	Name     string    `yaml:"name"`
	Platform string    `yaml:"platform,omitempty"`
	LastSeen time.Time `yaml:"last_seen,omitempty"`
}

// NewLinkedDevice creates a device entry with a fresh random ID.
func NewLinkedDevice(name, platform string) *LinkedDevice {
	return &LinkedDevice{
		ID:       uuid.NewString(),
		Name:     name,
		Platform: platform,
		LastSeen: time.Now().UTC().Truncate(time.Second),
	}
}

func defaultPreferences() *Preferences {
	return &Preferences{
		Theme:            "auto",
		TextScale:        1,
		Pasteboard:       "auto",
		ReadReceipts:     true,
		TypingIndicators: true,
	}
}

// New creates a Config with default values.
func New() *Config {
	return &Config{
		Version:     1,
		Preferences: defaultPreferences(),
		Account:     &Account{},
	}
}

// Path returns the file the config was loaded from.
func (c *Config) Path() string {
	return c.path
}

// SetAccount records a confirmed username and discriminator.
func (c *Config) SetAccount(username, discriminator string) {
	if c.Account == nil {
		c.Account = &Account{}
	}
	c.Account.Username = username
	c.Account.Discriminator = discriminator
}

// LinkDevice adds or replaces a linked device by ID.
func (c *Config) LinkDevice(d *LinkedDevice) {
	for i, existing := range c.LinkedDevices {
		if existing.ID == d.ID {
			c.LinkedDevices[i] = d
			return
		}
	}
	c.LinkedDevices = append(c.LinkedDevices, d)
}

// FindDevice returns the linked device whose ID starts with prefix. A prefix
// shared by more than one device matches nothing.
func (c *Config) FindDevice(prefix string) *LinkedDevice {
	if prefix == "" {
		return nil
	}
	var found *LinkedDevice
	for _, d := range c.LinkedDevices {
		if strings.HasPrefix(d.ID, prefix) {
			if found != nil {
				return nil
			}
			found = d
		}
	}
	return found
}

// UnlinkDevice removes a linked device. Returns false if no device had id.
func (c *Config) UnlinkDevice(id string) bool {
	for i, d := range c.LinkedDevices {
		if d.ID == id {
			c.LinkedDevices = append(c.LinkedDevices[:i], c.LinkedDevices[i+1:]...)
			return true
		}
	}
	return false
}

// normalize fills in sections missing from an older or hand-edited file.
func (c *Config) normalize() {
	if c.Preferences == nil {
		c.Preferences = defaultPreferences()
	}
	if c.Preferences.Theme == "" {
		c.Preferences.Theme = "auto"
	}
	if c.Preferences.TextScale < 1 {
		c.Preferences.TextScale = 1
	}
	if c.Account == nil {
		c.Account = &Account{}
	}
}
