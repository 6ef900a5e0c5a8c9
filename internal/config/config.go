package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    int    `yaml:"ttl"` // minutes
	} `yaml:"jwt"`

	// SMTP carries the contact-form mailbox settings.
	SMTP struct {
		Host      string `yaml:"host"`
		Port      int    `yaml:"port"`
		Username  string `yaml:"user"`
		Password  string `yaml:"password"`
		FromEmail string `yaml:"from_email"`
		FromName  string `yaml:"from_name"`
	} `yaml:"smtp"`

	// GraphMail is the OAuth client-credentials mail API used for
	// transactional purchase emails.
	GraphMail struct {
		TenantID     string `yaml:"tenant_id"`
		ClientID     string `yaml:"client_id"`
		ClientSecret string `yaml:"client_secret"`
		Sender       string `yaml:"sender"` // mailbox the API sends as
	} `yaml:"graph_mail"`

	Stripe struct {
		SecretKey string `yaml:"secret_key"`
		PublicKey string `yaml:"public_key"`
	} `yaml:"stripe"`

	// Supplier is the hardware supplier's order-intake and catalog-feed API.
	Supplier struct {
		BaseURL  string `yaml:"base_url"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
	} `yaml:"supplier"`

	Store struct {
		Name         string `yaml:"name"`
		Currency     string `yaml:"currency"` // ISO 4217, lower case
		SupportEmail string `yaml:"support_email"`
		SuccessURL   string `yaml:"success_url"` // payment redirect target
	} `yaml:"store"`
}

var AppConfig *Config

// LoadConfig reads config/config.yaml, unless DATABASE_URL is set, in which
// case the environment supplies the configuration (test mode).
func LoadConfig() {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		applyDefaults(&cfg)
		AppConfig = &cfg
		return
	}

	log.Println("Loading configuration from environment variables")

	cfg.Database.DSN = dbURL
	cfg.Server.Host = os.Getenv("SERVER_HOST")
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")

	cfg.SMTP.Host = os.Getenv("SMTP_HOST")
	cfg.SMTP.Port, _ = strconv.Atoi(os.Getenv("SMTP_PORT"))
	cfg.SMTP.Username = os.Getenv("SMTP_USER")
	cfg.SMTP.Password = os.Getenv("SMTP_PASSWORD")
	cfg.SMTP.FromEmail = os.Getenv("SMTP_FROM")
	cfg.SMTP.FromName = os.Getenv("SMTP_FROM_NAME")

	cfg.GraphMail.TenantID = os.Getenv("GRAPH_TENANT_ID")
	cfg.GraphMail.ClientID = os.Getenv("GRAPH_CLIENT_ID")
	cfg.GraphMail.ClientSecret = os.Getenv("GRAPH_CLIENT_SECRET")
	cfg.GraphMail.Sender = os.Getenv("GRAPH_SENDER")

	cfg.Stripe.SecretKey = os.Getenv("STRIPE_SECRET_KEY")
	cfg.Stripe.PublicKey = os.Getenv("STRIPE_PUBLIC_KEY")

	cfg.Supplier.BaseURL = os.Getenv("SUPPLIER_BASE_URL")
	cfg.Supplier.Username = os.Getenv("SUPPLIER_USERNAME")
	cfg.Supplier.Password = os.Getenv("SUPPLIER_PASSWORD")

	cfg.Store.Name = os.Getenv("STORE_NAME")
	cfg.Store.Currency = os.Getenv("STORE_CURRENCY")
	cfg.Store.SupportEmail = os.Getenv("STORE_SUPPORT_EMAIL")
	cfg.Store.SuccessURL = os.Getenv("STORE_SUCCESS_URL")

	applyDefaults(&cfg)
	AppConfig = &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Store.Currency == "" {
		cfg.Store.Currency = "eur"
	}
	if cfg.Store.Name == "" {
		cfg.Store.Name = "VoxShop"
	}
	if cfg.Store.SuccessURL == "" {
		cfg.Store.SuccessURL = "/checkout/success"
	}
	if cfg.JWT.TTL == 0 {
		cfg.JWT.TTL = 60
	}
	if cfg.SMTP.Port == 0 {
		cfg.SMTP.Port = 587
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
