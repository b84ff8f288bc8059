package main

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/BOCK-CHAIN/BockDocsBackend/auth"
	authservices "github.com/BOCK-CHAIN/BockDocsBackend/auth/services"
	"github.com/BOCK-CHAIN/BockDocsBackend/bolt"
	"github.com/BOCK-CHAIN/BockDocsBackend/documents"
	docservices "github.com/BOCK-CHAIN/BockDocsBackend/documents/services"
	"github.com/BOCK-CHAIN/BockDocsBackend/jwt"
	"github.com/BOCK-CHAIN/BockDocsBackend/log"
	"github.com/BOCK-CHAIN/BockDocsBackend/mail"
)

var (
	// flags
	env string

	// logger
	logger log.Logger

	// configuration
	cfg    Configuration
	jwtKey []byte

	// drivers
	boltDriver *bolt.Driver

	// stores
	userStore      auth.UserRepository
	documentStore  documents.DocumentRepository
	shareLinkStore documents.ShareLinkRepository

	// services
	userService     *authservices.UserService
	documentService *docservices.DocumentService
)

type Configuration struct {
	Web struct {
		Addr    string `toml:"addr"`
		BaseURL string `toml:"base_url"`
	} `toml:"web"`
	Auth struct {
		Key string `toml:"key"`
	} `toml:"auth"`
	Bolt struct {
		Store string `toml:"store"`
	} `toml:"bolt"`
	Email mail.Configuration `toml:"email"`
}

func init() {
	RootCmd.PersistentFlags().StringVar(&env, "env", "dev", "environment")
}

// applySecretOverrides overlays secrets from the environment on top of the
// toml configuration, so credentials never have to live in a checked-in file.
func applySecretOverrides(cfg *Configuration) {
	if v := os.Getenv("BOCKDOCS_SMTP_USER"); v != "" {
		cfg.Email.User = v
	}
	if v := os.Getenv("BOCKDOCS_SMTP_PASSWORD"); v != "" {
		cfg.Email.Password = v
	}
	if v := os.Getenv("BOCKDOCS_JWT_KEY_FILE"); v != "" {
		cfg.Auth.Key = v
	}
}

var RootCmd = cobra.Command{
	Use:   "bockdocs",
	Short: "Document editing backend",
	Long:  "Document editing backend",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// .env is optional, real environments set variables directly
		godotenv.Load()

		// Load configuration
		cfgData, err := ioutil.ReadFile(fmt.Sprintf("configuration/config.%s.toml", env))
		if err != nil {
			fmt.Println("error reading configuration:", err)
			os.Exit(1)
		}

		if err := toml.Unmarshal(cfgData, &cfg); err != nil {
			fmt.Println("error unmarshalling configuration:", err)
			os.Exit(1)
		}
		applySecretOverrides(&cfg)

		// Create logger
		logger = log.New(env)

		// Load signing key
		keyData, err := ioutil.ReadFile(cfg.Auth.Key)
		if err != nil {
			logger.Fatal("could not open key file:", err)
		}
		var key struct {
			Key string `json:"k"`
		}
		if err := json.Unmarshal(keyData, &key); err != nil {
			logger.Fatal("could not read key file:", err)
		}
		jwtKey = []byte(key.Key)

		// Create stores
		boltDriver = &bolt.Driver{}
		if err := boltDriver.Open(cfg.Bolt.Store); err != nil {
			logger.Fatal("could not open bolt store:", err)
		}
		userStore = &bolt.UserStore{Driver: boltDriver}
		documentStore = &bolt.DocumentStore{Driver: boltDriver}
		shareLinkStore = &bolt.ShareLinkStore{Driver: boltDriver}

		// Create services
		sender := mail.NewSender(cfg.Email, logger)
		encoder := jwt.NewEncodeDecoder(jwtKey)

		shareService := docservices.NewShareService(shareLinkStore, documentStore)
		documentService = docservices.NewDocumentService(documentStore, shareService, sender, cfg.Web.BaseURL)
		userService = authservices.NewUserService(
			userStore,
			encoder,
			authservices.NewGoogleClient(),
			sender,
			documentService,
			cfg.Web.BaseURL,
		)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		boltDriver.Close()
	},
}
