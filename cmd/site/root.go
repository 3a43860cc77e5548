package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	site "github.com/brainbridge/site"
	"github.com/brainbridge/site/analytics"
	"github.com/brainbridge/site/lead"
)

const envPrefix = "BRAINBRIDGE"

// config is everything the commands read from viper.
type config struct {
	Site         site.SiteConfig
	DiagAddr     string
	Env          string
	WatchContent bool
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	var cfgFile string

	root := &cobra.Command{
		Use:           "site",
		Short:         "BrainBridge marketing site",
		Long:          "site serves the BrainBridge blog and demo request form, and manages the blog corpus.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeConfig(v, cfgFile)
		},
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	root.PersistentFlags().String("content-dir", "", "blog corpus directory")
	_ = v.BindPFlag("content_dir", root.PersistentFlags().Lookup("content-dir"))

	root.AddCommand(
		newServeCmd(v),
		newPostCmd(v),
		newSitemapCmd(v),
		newVersionCmd(),
	)
	return root
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("name", "BrainBridge")
	v.SetDefault("url", "http://localhost:3000")
	v.SetDefault("addr", ":3000")
	v.SetDefault("diag_addr", ":9999")
	v.SetDefault("env", "production")
	v.SetDefault("content_dir", "content/blog")
	v.SetDefault("content.watch", false)
	v.SetDefault("hubspot.timeout", lead.DefaultTimeout)
	v.SetDefault("cookie_secure", false)
}

func initializeConfig(v *viper.Viper, cfgFile string) error {
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// the unprefixed names match the variables the previous deployment used
	_ = v.BindEnv("hubspot.portal_id", envPrefix+"_HUBSPOT_PORTAL_ID", "HUBSPOT_PORTAL_ID")
	_ = v.BindEnv("hubspot.form_id", envPrefix+"_HUBSPOT_FORM_ID", "HUBSPOT_FORM_ID")
	_ = v.BindEnv("ga.measurement_id", envPrefix+"_GA_MEASUREMENT_ID", "GA_MEASUREMENT_ID")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || cfgFile != "" {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

func loadConfig(v *viper.Viper) config {
	return config{
		Site: site.SiteConfig{
			Name:          v.GetString("name"),
			URL:           v.GetString("url"),
			Description:   v.GetString("description"),
			Addr:          v.GetString("addr"),
			ContentDir:    v.GetString("content_dir"),
			SessionSecret: v.GetString("session_secret"),
			CookieSecure:  v.GetBool("cookie_secure"),
			HubSpot: lead.Config{
				PortalID: v.GetString("hubspot.portal_id"),
				FormID:   v.GetString("hubspot.form_id"),
				Timeout:  v.GetDuration("hubspot.timeout"),
			},
			Analytics: analytics.Config{
				MeasurementID: v.GetString("ga.measurement_id"),
				APISecret:     v.GetString("ga.api_secret"),
			},
		},
		DiagAddr:     v.GetString("diag_addr"),
		Env:          v.GetString("env"),
		WatchContent: v.GetBool("content.watch"),
	}
}

func newLogger(env string) (*zap.SugaredLogger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if env == "development" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return logger.Sugar(), nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the site version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "site %s\n", version)
		},
	}
}
