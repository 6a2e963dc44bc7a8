package config

import (
	"ChordDHT/internal/configloader"
	"ChordDHT/internal/logger"
	"fmt"
	"net"
	"strings"
	"time"
)

type TracingConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Exporter string `yaml:"exporter"`
	Endpoint string `yaml:"endpoint"`
}

type TelemetryConfig struct {
	Tracing TracingConfig `yaml:"tracing"`
}

type FileLoggerConfig struct {
	Path       string `yaml:"path"`
	MaxSize    int    `yaml:"maxSize"`
	MaxBackups int    `yaml:"maxBackups"`
	MaxAge     int    `yaml:"maxAge"`
	Compress   bool   `yaml:"compress"`
}

type LoggerConfig struct {
	Active   bool             `yaml:"active"`
	Level    string           `yaml:"level"`
	Encoding string           `yaml:"encoding"`
	Mode     string           `yaml:"mode"`
	File     FileLoggerConfig `yaml:"file"`
}

// FaultToleranceConfig governs the resilience knobs of the Chord
// routing layer: how many standby successors are tracked and how
// quickly churn is detected and repaired.
type FaultToleranceConfig struct {
	SuccessorListSize     int           `yaml:"successorListSize"`
	StabilizationInterval time.Duration `yaml:"stabilizationInterval"`
	FailureTimeout        time.Duration `yaml:"failureTimeout"`
}

// DNSRegisterConfig configures the etcd-backed half of the DNS
// bootstrap backend, for operators whose authoritative zone is served
// by CoreDNS's etcd plugin.
type DNSRegisterConfig struct {
	Enabled   bool     `yaml:"enabled"`
	Endpoints []string `yaml:"endpoints"`
	BasePath  string   `yaml:"basePath"`
	TTL       int64    `yaml:"ttl"`
}

// DNSConfig configures the self-hosted DNS bootstrap backend: SRV (or
// plain A/AAAA) discovery against an arbitrary resolver, optionally
// paired with registration into an etcd-backed zone.
type DNSConfig struct {
	Resolver string            `yaml:"resolver"`
	DNSName  string            `yaml:"dnsName"`
	SRV      bool              `yaml:"srv"`
	Service  string            `yaml:"service"`
	Proto    string            `yaml:"proto"`
	Port     int               `yaml:"port"`
	Register DNSRegisterConfig `yaml:"register"`
}

// Route53Config configures the AWS Route53 bootstrap backend: nodes
// are published as SRV records in a hosted zone.
type Route53Config struct {
	HostedZoneID string `yaml:"hostedZoneId"`
	DomainSuffix string `yaml:"domainSuffix"`
	TTL          int64  `yaml:"ttl"`
}

type BootstrapConfig struct {
	Mode    string        `yaml:"mode"`
	Peers   []string      `yaml:"peers"`
	DNS     DNSConfig     `yaml:"dns"`
	Route53 Route53Config `yaml:"route53"`
}

type DHTConfig struct {
	IDBits         int                  `yaml:"idBits"`
	Mode           string               `yaml:"mode"`
	FaultTolerance FaultToleranceConfig `yaml:"faultTolerance"`
	Bootstrap      BootstrapConfig      `yaml:"bootstrap"`
}

type NodeConfig struct {
	Id   string `yaml:"id"`
	Bind string `yaml:"bind"`
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type Config struct {
	Logger    LoggerConfig    `yaml:"logger"`
	DHT       DHTConfig       `yaml:"dht"`
	Node      NodeConfig      `yaml:"node"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// LoadConfig loads the configuration from a YAML file at the given
// path. This performs only syntactic parsing; call ValidateConfig
// afterward to check structural correctness.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	if err := configloader.LoadYAML(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyEnvOverrides applies environment variable overrides to the
// configuration. Supported overrides:
//
//	NODE_ID                  -> cfg.Node.Id
//	NODE_BIND                -> cfg.Node.Bind
//	NODE_HOST                -> cfg.Node.Host
//	NODE_PORT                -> cfg.Node.Port
//	DHT_MODE                 -> cfg.DHT.Mode
//	DHT_ID_BITS               -> cfg.DHT.IDBits
//	DHT_SUCCESSOR_LIST_SIZE   -> cfg.DHT.FaultTolerance.SuccessorListSize
//	DHT_STABILIZE_INTERVAL    -> cfg.DHT.FaultTolerance.StabilizationInterval
//	DHT_FAILURE_TIMEOUT       -> cfg.DHT.FaultTolerance.FailureTimeout
//	BOOTSTRAP_MODE            -> cfg.DHT.Bootstrap.Mode
//	BOOTSTRAP_PEERS           -> cfg.DHT.Bootstrap.Peers (comma-separated)
//	BOOTSTRAP_DNS_NAME        -> cfg.DHT.Bootstrap.DNS.DNSName
//	BOOTSTRAP_DNS_RESOLVER    -> cfg.DHT.Bootstrap.DNS.Resolver
//	BOOTSTRAP_DNS_SRV         -> cfg.DHT.Bootstrap.DNS.SRV
//	BOOTSTRAP_DNS_PORT        -> cfg.DHT.Bootstrap.DNS.Port
//	BOOTSTRAP_DNS_ENDPOINTS   -> cfg.DHT.Bootstrap.DNS.Register.Endpoints (comma-separated)
//	ROUTE53_ZONE_ID           -> cfg.DHT.Bootstrap.Route53.HostedZoneID
//	ROUTE53_SUFFIX            -> cfg.DHT.Bootstrap.Route53.DomainSuffix
//	ROUTE53_TTL               -> cfg.DHT.Bootstrap.Route53.TTL
//	TRACE_ENABLED             -> cfg.Telemetry.Tracing.Enabled
//	TRACE_EXPORTER            -> cfg.Telemetry.Tracing.Exporter
//	TRACE_ENDPOINT            -> cfg.Telemetry.Tracing.Endpoint
//	LOGGER_ENABLED            -> cfg.Logger.Active
//	LOGGER_LEVEL              -> cfg.Logger.Level
//	LOGGER_ENCODING           -> cfg.Logger.Encoding
//	LOGGER_MODE               -> cfg.Logger.Mode
//	LOGGER_FILE_PATH          -> cfg.Logger.File.Path
func (cfg *Config) ApplyEnvOverrides() {
	configloader.OverrideString(&cfg.Node.Id, "NODE_ID")
	configloader.OverrideString(&cfg.Node.Bind, "NODE_BIND")
	configloader.OverrideString(&cfg.Node.Host, "NODE_HOST")
	configloader.OverrideInt(&cfg.Node.Port, "NODE_PORT")

	configloader.OverrideString(&cfg.DHT.Mode, "DHT_MODE")
	configloader.OverrideInt(&cfg.DHT.IDBits, "DHT_ID_BITS")
	configloader.OverrideInt(&cfg.DHT.FaultTolerance.SuccessorListSize, "DHT_SUCCESSOR_LIST_SIZE")
	configloader.OverrideDuration(&cfg.DHT.FaultTolerance.StabilizationInterval, "DHT_STABILIZE_INTERVAL")
	configloader.OverrideDuration(&cfg.DHT.FaultTolerance.FailureTimeout, "DHT_FAILURE_TIMEOUT")

	configloader.OverrideString(&cfg.DHT.Bootstrap.Mode, "BOOTSTRAP_MODE")
	configloader.OverrideStringSlice(&cfg.DHT.Bootstrap.Peers, "BOOTSTRAP_PEERS")
	configloader.OverrideString(&cfg.DHT.Bootstrap.DNS.DNSName, "BOOTSTRAP_DNS_NAME")
	configloader.OverrideString(&cfg.DHT.Bootstrap.DNS.Resolver, "BOOTSTRAP_DNS_RESOLVER")
	configloader.OverrideBool(&cfg.DHT.Bootstrap.DNS.SRV, "BOOTSTRAP_DNS_SRV")
	configloader.OverrideInt(&cfg.DHT.Bootstrap.DNS.Port, "BOOTSTRAP_DNS_PORT")
	configloader.OverrideStringSlice(&cfg.DHT.Bootstrap.DNS.Register.Endpoints, "BOOTSTRAP_DNS_ENDPOINTS")

	configloader.OverrideString(&cfg.DHT.Bootstrap.Route53.HostedZoneID, "ROUTE53_ZONE_ID")
	configloader.OverrideString(&cfg.DHT.Bootstrap.Route53.DomainSuffix, "ROUTE53_SUFFIX")
	configloader.OverrideInt64(&cfg.DHT.Bootstrap.Route53.TTL, "ROUTE53_TTL")

	configloader.OverrideBool(&cfg.Telemetry.Tracing.Enabled, "TRACE_ENABLED")
	configloader.OverrideString(&cfg.Telemetry.Tracing.Exporter, "TRACE_EXPORTER")
	configloader.OverrideString(&cfg.Telemetry.Tracing.Endpoint, "TRACE_ENDPOINT")

	configloader.OverrideBool(&cfg.Logger.Active, "LOGGER_ENABLED")
	configloader.OverrideString(&cfg.Logger.Level, "LOGGER_LEVEL")
	configloader.OverrideString(&cfg.Logger.Encoding, "LOGGER_ENCODING")
	configloader.OverrideString(&cfg.Logger.Mode, "LOGGER_MODE")
	configloader.OverrideString(&cfg.Logger.File.Path, "LOGGER_FILE_PATH")
}

// ValidateConfig performs structural validation of the loaded
// configuration: required fields, range checks, and enum-like fields.
// All detected issues are accumulated and returned as a single error.
func (cfg *Config) ValidateConfig() error {
	var errs []string

	switch cfg.Logger.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("invalid logger.level: %s", cfg.Logger.Level))
	}
	switch cfg.Logger.Encoding {
	case "console", "json":
	default:
		errs = append(errs, fmt.Sprintf("invalid logger.encoding: %s", cfg.Logger.Encoding))
	}
	switch cfg.Logger.Mode {
	case "stdout":
	case "file":
		if cfg.Logger.File.Path == "" {
			errs = append(errs, "logger.file.path is required when mode=file")
		}
		if cfg.Logger.File.MaxSize < 0 || cfg.Logger.File.MaxBackups < 0 || cfg.Logger.File.MaxAge < 0 {
			errs = append(errs, "logger.file.* values must be non-negative")
		}
	default:
		errs = append(errs, fmt.Sprintf("invalid logger.mode: %s", cfg.Logger.Mode))
	}

	if cfg.DHT.IDBits <= 0 {
		errs = append(errs, "dht.idBits must be > 0")
	}
	switch cfg.DHT.Mode {
	case "public", "private":
	default:
		errs = append(errs, fmt.Sprintf("invalid dht.mode: %s", cfg.DHT.Mode))
	}
	if cfg.DHT.FaultTolerance.SuccessorListSize <= 0 {
		errs = append(errs, "dht.faultTolerance.successorListSize must be > 0")
	}
	if cfg.DHT.FaultTolerance.StabilizationInterval <= 0 {
		errs = append(errs, "dht.faultTolerance.stabilizationInterval must be > 0")
	}
	if cfg.DHT.FaultTolerance.FailureTimeout <= 0 {
		errs = append(errs, "dht.faultTolerance.failureTimeout must be > 0")
	}

	b := cfg.DHT.Bootstrap
	switch b.Mode {
	case "dns":
		if b.DNS.DNSName == "" {
			errs = append(errs, "bootstrap.dns.dnsName is required in mode=dns")
		}
		if !b.DNS.SRV && b.DNS.Port <= 0 {
			errs = append(errs, "bootstrap.dns.port must be > 0 when using A/AAAA (srv=false)")
		}
		if b.DNS.Register.Enabled {
			if len(b.DNS.Register.Endpoints) == 0 {
				errs = append(errs, "bootstrap.dns.register.endpoints is required when register.enabled=true")
			}
			if b.DNS.Register.BasePath == "" {
				errs = append(errs, "bootstrap.dns.register.basePath is required when register.enabled=true")
			}
			if b.DNS.Register.TTL <= 0 {
				errs = append(errs, "bootstrap.dns.register.ttl must be > 0 when register.enabled=true")
			}
		}
	case "route53":
		if b.Route53.HostedZoneID == "" {
			errs = append(errs, "bootstrap.route53.hostedZoneId is required in mode=route53")
		}
		if b.Route53.DomainSuffix == "" {
			errs = append(errs, "bootstrap.route53.domainSuffix is required in mode=route53")
		}
		if b.Route53.TTL <= 0 {
			errs = append(errs, "bootstrap.route53.ttl must be > 0 in mode=route53")
		}
	case "static":
		for _, p := range b.Peers {
			if _, _, err := net.SplitHostPort(p); err != nil {
				errs = append(errs, fmt.Sprintf("invalid peer address %q in bootstrap.peers: %v", p, err))
			}
		}
	case "init":
		// first node of a new ring, no extra constraints
	default:
		errs = append(errs, fmt.Sprintf("invalid bootstrap.mode: %s (must be dns, route53, static or init)", b.Mode))
	}

	if cfg.Node.Port < 0 || cfg.Node.Port > 65535 {
		errs = append(errs, fmt.Sprintf("node.port must be in [0,65535], got %d", cfg.Node.Port))
	}

	if cfg.Telemetry.Tracing.Enabled {
		switch cfg.Telemetry.Tracing.Exporter {
		case "stdout", "otlp":
		default:
			errs = append(errs, fmt.Sprintf("invalid telemetry.tracing.exporter: %s", cfg.Telemetry.Tracing.Exporter))
		}
		if cfg.Telemetry.Tracing.Exporter == "otlp" && cfg.Telemetry.Tracing.Endpoint == "" {
			errs = append(errs, "telemetry.tracing.endpoint is required when exporter=otlp")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// LogConfig prints the loaded configuration at DEBUG level, useful for
// diagnosing a misconfigured deployment from its own logs.
func (cfg *Config) LogConfig(lgr logger.Logger) {
	lgr.Debug("loaded configuration",
		logger.F("logger.active", cfg.Logger.Active),
		logger.F("logger.level", cfg.Logger.Level),
		logger.F("logger.encoding", cfg.Logger.Encoding),
		logger.F("logger.mode", cfg.Logger.Mode),
		logger.F("logger.file.path", cfg.Logger.File.Path),
		logger.F("logger.file.maxSizeMB", cfg.Logger.File.MaxSize),
		logger.F("logger.file.maxBackups", cfg.Logger.File.MaxBackups),
		logger.F("logger.file.maxAgeDays", cfg.Logger.File.MaxAge),
		logger.F("logger.file.compress", cfg.Logger.File.Compress),

		logger.F("dht.idBits", cfg.DHT.IDBits),
		logger.F("dht.mode", cfg.DHT.Mode),

		logger.F("dht.faultTolerance.successorListSize", cfg.DHT.FaultTolerance.SuccessorListSize),
		logger.F("dht.faultTolerance.stabilizationInterval", cfg.DHT.FaultTolerance.StabilizationInterval.String()),
		logger.F("dht.faultTolerance.failureTimeout", cfg.DHT.FaultTolerance.FailureTimeout.String()),

		logger.F("dht.bootstrap.mode", cfg.DHT.Bootstrap.Mode),
		logger.F("dht.bootstrap.peers", cfg.DHT.Bootstrap.Peers),
		logger.F("dht.bootstrap.dns.dnsName", cfg.DHT.Bootstrap.DNS.DNSName),
		logger.F("dht.bootstrap.dns.srv", cfg.DHT.Bootstrap.DNS.SRV),
		logger.F("dht.bootstrap.dns.port", cfg.DHT.Bootstrap.DNS.Port),
		logger.F("dht.bootstrap.route53.hostedZoneId", cfg.DHT.Bootstrap.Route53.HostedZoneID),
		logger.F("dht.bootstrap.route53.domainSuffix", cfg.DHT.Bootstrap.Route53.DomainSuffix),

		logger.F("node.id", cfg.Node.Id),
		logger.F("node.bind", cfg.Node.Bind),
		logger.F("node.host", cfg.Node.Host),
		logger.F("node.port", cfg.Node.Port),

		logger.F("telemetry.tracing.enabled", cfg.Telemetry.Tracing.Enabled),
		logger.F("telemetry.tracing.exporter", cfg.Telemetry.Tracing.Exporter),
		logger.F("telemetry.tracing.endpoint", cfg.Telemetry.Tracing.Endpoint),
	)
}
