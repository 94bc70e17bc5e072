package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/talentscope/talentscope/internal/directory"
	"github.com/talentscope/talentscope/internal/platform"
	"github.com/talentscope/talentscope/pkg/config"
	"github.com/talentscope/talentscope/pkg/matching"
	"github.com/talentscope/talentscope/pkg/profile"
)

// loadConfig reads the --config file, or the nearest
// .talentscope/config.yaml, or falls back to defaults.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path != "" {
		return config.Load(path)
	}

	wd, err := os.Getwd()
	if err != nil {
		return config.DefaultConfig(), nil
	}
	cfgFile := config.FindConfigFile(wd)
	if cfgFile == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		return config.DefaultConfig(), nil
	}
	return cfg, nil
}

// openSource returns a profile source over a JSON profiles file when one is
// given, otherwise over the HR database. The returned close func is never nil.
func openSource(profilesPath, databaseURL string) (profile.Source, func(), error) {
	if profilesPath != "" {
		profiles, err := profile.LoadProfiles(profilesPath)
		if err != nil {
			return nil, nil, err
		}
		fmt.Fprintf(os.Stderr, "Loaded %d profiles from %s\n", len(profiles), profilesPath)
		return profile.NewMemoryStore(profiles...), func() {}, nil
	}

	db, err := openDB(databaseURL)
	if err != nil {
		return nil, nil, err
	}
	return directory.NewStore(db), func() { db.Close() }, nil
}

func openDB(databaseURL string) (*sql.DB, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("no employee data: pass --profiles or --database-url, or set database.url in config")
	}
	return platform.Open(databaseURL)
}

// parseWeights parses "Group Name=0.3" pairs.
func parseWeights(pairs []string) (matching.Weights, error) {
	w := make(matching.Weights, len(pairs))
	for _, p := range pairs {
		name, val, ok := strings.Cut(p, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid weight %q: want GROUP=WEIGHT", p)
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid weight %q: %w", p, err)
		}
		w[name] = f
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return w, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
