package main

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/fieldgate/fieldgate/pkg/authz"
	"github.com/fieldgate/fieldgate/pkg/authz/cache"
	"github.com/fieldgate/fieldgate/pkg/boundary"
	"github.com/fieldgate/fieldgate/pkg/config"
	"github.com/fieldgate/fieldgate/pkg/db"
	"github.com/fieldgate/fieldgate/pkg/metrics"
	"github.com/fieldgate/fieldgate/pkg/policy"
	"github.com/fieldgate/fieldgate/pkg/server"
	"github.com/fieldgate/fieldgate/pkg/server/endpoints"
	keystore "github.com/fieldgate/fieldgate/pkg/signer/store"
	gormstore "github.com/fieldgate/fieldgate/pkg/store/gorm"
	"github.com/fieldgate/fieldgate/pkg/token"
)

func defaultListenAddress() string {
	if addr := os.Getenv("FIELDGATE_LISTEN_ADDRESS"); addr != "" {
		return addr
	}
	return ":8080"
}

func defaultPortInt() int {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			return p
		}
	}
	return 8080
}

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the Fieldgate authorization server",
	Long: `Run the Fieldgate authorization server.

To run the server requires the environment variables FIELDGATE_DATA_KEY and DATABASE_URL.

By default, database migrations are run on startup. Use --no-migrate to skip.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Validate required environment variables first (fail fast)
		dataKeyB64, ok := os.LookupEnv("FIELDGATE_DATA_KEY")
		if !ok {
			fmt.Fprintln(os.Stderr, "FIELDGATE_DATA_KEY environment variable is required")
			os.Exit(1)
		}

		if os.Getenv("DATABASE_URL") == "" {
			fmt.Fprintln(os.Stderr, "DATABASE_URL environment variable is required")
			os.Exit(1)
		}

		noMigrate, _ := cmd.Flags().GetBool("no-migrate")
		if !noMigrate {
			log.Println("Running database migrations...")
			if err := runMigrations(); err != nil {
				fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
				os.Exit(1)
			}
		}

		dataKey, err := base64.StdEncoding.DecodeString(dataKeyB64)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Bad FIELDGATE_DATA_KEY:", err)
			os.Exit(1)
		}

		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Unable to load configuration:", err)
			os.Exit(1)
		}
		if err := cfg.Validate(); err != nil {
			fmt.Fprintln(os.Stderr, "Invalid configuration:", err)
			os.Exit(1)
		}

		if addr, _ := cmd.Flags().GetString("listen-address"); addr != "" {
			cfg.ListenAddress = addr
		}

		database, err := db.Connect(db.Config{})
		if err != nil {
			fmt.Fprintln(os.Stderr, "Unable to connect to DB:", err)
			os.Exit(1)
		}

		keys, err := keystore.NewKeyStore(database, dataKey)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Unable to initiate keystore:", err)
			os.Exit(1)
		}

		signingKey, err := keys.ByID(keystore.PolicySigningKeyID)
		if err != nil {
			if errors.Is(err, keystore.ErrKeyNotFound) {
				fmt.Fprintln(os.Stderr, "No signing key found. Run \"fieldgatectl signing-key generate\" first.")
			} else {
				fmt.Fprintln(os.Stderr, "Unable to load signing key:", err)
			}
			os.Exit(1)
		}

		defaults := policy.DefaultDefaults()
		if cfg.PolicyDefaultsPath != "" {
			defaults, err = policy.LoadDefaults(cfg.PolicyDefaultsPath)
			if err != nil {
				fmt.Fprintln(os.Stderr, "Unable to load policy defaults:", err)
				os.Exit(1)
			}
		}

		var hierarchy authz.Hierarchy
		if len(cfg.RoleLevels) > 0 {
			hierarchy = authz.Hierarchy(cfg.RoleLevels)
		}

		tokenStore := gormstore.NewTokenStore(database)
		sessionStore := gormstore.NewSessionStore(database)
		permCache := cache.New(gormstore.NewCacheStore(database), cfg.PermissionCacheTTL())

		tokens := token.NewService(signingKey.Key, tokenStore, sessionStore, token.TTLs{
			Access:   cfg.AccessTokenTTL(),
			Refresh:  cfg.RefreshTokenTTL(),
			Override: cfg.OverrideTokenTTL(),
		})
		authzEngine := authz.NewEngine(
			gormstore.NewRoleStore(database),
			gormstore.NewProjectStore(database),
			permCache,
			hierarchy,
		)
		boundaryEngine := boundary.NewEngine(authzEngine, gormstore.NewTeamStore(database))
		policyEngine := policy.NewEngine(
			gormstore.NewDeviceStore(database),
			gormstore.NewTeamStore(database),
			gormstore.NewPolicyIssueStore(database),
			signingKey.Key,
			defaults,
		)

		if cfg.MetricsEnabled {
			metrics.Init()
		}

		s := server.NewServer(cfg, database, tokens, authzEngine, boundaryEngine, policyEngine)
		endpoints.RegisterAll(s)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go runCleanup(ctx, cfg, permCache, tokenStore)
		if cfg.PolicyDefaultsPath != "" {
			go watchPolicyDefaults(ctx, cfg.PolicyDefaultsPath, policyEngine)
		}

		go func() {
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
			<-sigChan
			log.Println("Shutting down...")
			cancel()
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer shutdownCancel()
			_ = s.Shutdown(shutdownCtx)
		}()

		log.Printf("Running server at http://%s...\n", cfg.ListenAddress)
		log.Fatal(s.Start())
	},
}

// watchPolicyDefaults reloads the issuance defaults whenever the file
// changes. A reload that fails to parse keeps the previous defaults.
func watchPolicyDefaults(ctx context.Context, filename string, engine *policy.Engine) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Printf("Policy defaults watch unavailable: %v", err)
		return
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(filename); err != nil {
		log.Printf("Failed to watch policy defaults %s: %v", filename, err)
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
				defaults, err := policy.LoadDefaults(filename)
				if err != nil {
					log.Printf("Policy defaults reload failed, keeping previous: %v", err)
					continue
				}
				engine.SetDefaults(defaults)
				log.Printf("Policy defaults reloaded from %s", filename)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Printf("Policy defaults watch error: %v", err)
		}
	}
}

// runCleanup sweeps expired cache entries and prunes the token ledger on
// a fixed interval. Nothing here ever runs on the request path.
func runCleanup(ctx context.Context, cfg *config.Config, permCache *cache.Cache, tokens *gormstore.TokenStore) {
	ticker := time.NewTicker(cfg.CleanupInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			now := time.Now()
			if removed, err := permCache.CleanupExpired(ctx); err != nil {
				log.Printf("Cache cleanup failed: %v", err)
			} else if removed > 0 {
				log.Printf("Cache cleanup removed %d entries", removed)
			}
			if removed, err := tokens.DeleteRevokedBefore(ctx, now.Add(-cfg.RevocationRetention())); err != nil {
				log.Printf("Revocation cleanup failed: %v", err)
			} else if removed > 0 {
				log.Printf("Revocation cleanup removed %d entries", removed)
			}
			if removed, err := tokens.DeleteIssuedExpiredBefore(ctx, now); err != nil {
				log.Printf("Issued token cleanup failed: %v", err)
			} else if removed > 0 {
				log.Printf("Issued token cleanup removed %d entries", removed)
			}
		}
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().StringP("listen-address", "l", defaultListenAddress(), "server listen address")
	serverCmd.Flags().Bool("no-migrate", false, "skip running database migrations on start")
}
