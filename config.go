package followerwatch

import "github.com/spf13/viper"

// Config carries everything a run needs, read from the environment once at
// process start and passed to the components that need it. No component
// reads the environment on its own.
type Config struct {
	// Token is the GitHub credential used for both reads and writes.
	Token string

	// TargetUser is the login whose followers are tracked.
	TargetUser string

	// Repository is the owner/repo slug issues are opened on.
	Repository string

	// OutputPath is the CI step output file. Empty disables CI outputs.
	OutputPath string

	// SnapshotPath is the follower snapshot file.
	SnapshotPath string

	// RunningInCI reports whether the process runs inside a CI pipeline.
	RunningInCI bool

	// CreateIssues opts in to opening an issue when the diff is non-empty.
	// Issues are only created when RunningInCI is also true.
	CreateIssues bool
}

const defaultSnapshotPath = "followers.json"

// ConfigFromEnv builds and validates a Config from the process environment:
// GITHUB_TOKEN, TARGET_USER, GITHUB_REPOSITORY, GITHUB_OUTPUT, CI,
// CREATE_ISSUE, SNAPSHOT_PATH.
func ConfigFromEnv() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	for _, key := range []string{
		"GITHUB_TOKEN",
		"TARGET_USER",
		"GITHUB_REPOSITORY",
		"GITHUB_OUTPUT",
		"CI",
		"CREATE_ISSUE",
		"SNAPSHOT_PATH",
	} {
		if err := v.BindEnv(key); err != nil {
			return Config{}, err
		}
	}
	v.SetDefault("SNAPSHOT_PATH", defaultSnapshotPath)

	cfg := Config{
		Token:        v.GetString("GITHUB_TOKEN"),
		TargetUser:   v.GetString("TARGET_USER"),
		Repository:   v.GetString("GITHUB_REPOSITORY"),
		OutputPath:   v.GetString("GITHUB_OUTPUT"),
		SnapshotPath: v.GetString("SNAPSHOT_PATH"),
		RunningInCI:  v.GetBool("CI"),
		CreateIssues: v.GetBool("CREATE_ISSUE"),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that required configuration is present. It fails before
// any network call: a missing credential never gets as far as the API.
func (c Config) Validate() error {
	if c.Token == "" {
		return &ConfigError{Field: "GITHUB_TOKEN", Reason: "a GitHub token is required"}
	}
	if c.TargetUser == "" {
		return &ConfigError{Field: "TARGET_USER", Reason: "the user to track is required"}
	}
	if c.CreateIssues && c.Repository == "" {
		return &ConfigError{
			Field:  "GITHUB_REPOSITORY",
			Reason: "an owner/repo slug is required when issue creation is enabled",
		}
	}
	return nil
}
