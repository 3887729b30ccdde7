package models

// Settings holds the full runtime configuration, unmarshalled once at startup
// and passed explicitly to the components that need it. Nothing reads viper
// after startup.
type Settings struct {
	Bot      BotSettings      `mapstructure:"bot"`
	Database DatabaseSettings `mapstructure:"database"`
	Faucet   FaucetSettings   `mapstructure:"faucet"`
	Activity ActivitySettings `mapstructure:"activity"`
	Tiers    TierThresholds   `mapstructure:"tiers"`
	Persona  PersonaSettings  `mapstructure:"persona"`
}

// BotSettings configures the Discord-facing behaviour.
type BotSettings struct {
	SourceChannelID    string `mapstructure:"sourceChannelId"`    // links-only channel whose posts get routed
	AdminChannelID     string `mapstructure:"adminChannelId"`     // mirror target for utils.Log
	DiscoveryEmbed     bool   `mapstructure:"discoveryEmbed"`     // post a pointer embed back into the source channel
	AutoArchiveMinutes int    `mapstructure:"autoArchiveMinutes"` // auto-archive duration for created threads
}

// DatabaseSettings configures the sqlite store.
type DatabaseSettings struct {
	Path string `mapstructure:"path"`
}

// FaucetSettings configures the one-time coin grant.
type FaucetSettings struct {
	Channels []string `mapstructure:"channels"` // channels where the faucet may be claimed
	Amount   int64    `mapstructure:"amount"`
}

// ActivitySettings configures participation tracking.
type ActivitySettings struct {
	TesterChannels []string `mapstructure:"testerChannels"` // channels whose messages count as activity
	WindowDays     int      `mapstructure:"windowDays"`     // trailing window for tier computation
}

// TierThresholds are the minimum in-window activity counts per tier,
// evaluated highest-first.
type TierThresholds struct {
	Elite     int `mapstructure:"elite"`
	Detective int `mapstructure:"detective"`
	Helper    int `mapstructure:"helper"`
}

// PersonaSettings configures the persona reply pass-through.
type PersonaSettings struct {
	HelpChannels []string `mapstructure:"helpChannels"` // channels where the bot replies without being mentioned
	Model        string   `mapstructure:"model"`
}

// CommandsConfig represents the commands section of config.yaml.
type CommandsConfig struct {
	Auth AuthConfig `mapstructure:"auth"`
}

// AuthConfig lists who may run privileged commands.
type AuthConfig struct {
	Developers  []string `mapstructure:"developers"`
	AdminsRoles []string `mapstructure:"adminsRoles"`
}
