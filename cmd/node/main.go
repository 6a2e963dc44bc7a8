package main

import (
	"ChordDHT/internal/bootstrap"
	"ChordDHT/internal/client"
	"ChordDHT/internal/config"
	"ChordDHT/internal/domain"
	"ChordDHT/internal/logger"
	zapfactory "ChordDHT/internal/logger/zap"
	"ChordDHT/internal/node"
	"ChordDHT/internal/routingtable"
	"ChordDHT/internal/server"
	"ChordDHT/internal/telemetry"
	"ChordDHT/internal/telemetry/lookuptrace"
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc"
)

var defaultConfigPath = "config/node/config.yaml"

func main() {
	configPath := flag.String("config", defaultConfigPath, "path to configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("failed to load configuration from %q: %v", *configPath, err)
	}
	cfg.ApplyEnvOverrides()
	if err := cfg.ValidateConfig(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	var lgr logger.Logger
	if cfg.Logger.Active {
		zapLog, err := zapfactory.New(cfg.Logger)
		if err != nil {
			log.Fatalf("failed to initialize logger: %v", err)
		}
		defer func() { _ = zapLog.Sync() }()
		lgr = zapfactory.NewZapAdapter(zapLog)
	} else {
		lgr = &logger.NopLogger{}
	}
	cfg.LogConfig(lgr)

	lis, advertised, err := server.Listen(cfg.DHT.Mode, cfg.Node.Bind, cfg.Node.Host, cfg.Node.Port)
	if err != nil {
		lgr.Error("failed to initialize listener", logger.F("err", err))
		os.Exit(1)
	}
	defer func() { _ = lis.Close() }()
	addr := lis.Addr().String()
	lgr.Debug("created listener", logger.F("addr", addr))

	space, err := domain.NewSpace(cfg.DHT.IDBits, cfg.DHT.FaultTolerance.SuccessorListSize)
	if err != nil {
		lgr.Error("failed to initialize identifier space", logger.F("err", err))
		os.Exit(1)
	}

	var id domain.ID
	if cfg.Node.Id == "" {
		id = space.NewIdFromString(addr)
	} else {
		id, err = space.FromHexString(cfg.Node.Id)
		if err != nil {
			lgr.Error("invalid node ID in configuration", logger.F("err", err))
			os.Exit(1)
		}
	}
	self := &domain.Node{ID: id, Addr: advertised}
	lgr = lgr.Named("node").WithNode(*self)
	lgr.Info("node initializing", logger.F("id", id.ToHexString(true)))

	shutdownTracer := telemetry.InitTracer(cfg.Telemetry, "ChordDHT-Node", id)
	defer shutdownTracer(context.Background())

	rt := routingtable.New(self, space, cfg.DHT.FaultTolerance.SuccessorListSize,
		routingtable.WithLogger(lgr.Named("routingtable")),
	)

	cp := client.New(cfg.DHT.FaultTolerance.FailureTimeout,
		client.WithLogger(lgr.Named("clientpool")),
	)

	n := node.New(rt, cp, node.WithLogger(lgr))

	var grpcOpts []grpc.ServerOption
	if cfg.Telemetry.Tracing.Enabled {
		grpcOpts = append(grpcOpts, grpc.ChainUnaryInterceptor(lookuptrace.ServerInterceptor()))
	}

	srv, err := server.New(lis, n, grpcOpts, server.WithLogger(lgr.Named("server")))
	if err != nil {
		lgr.Error("failed to initialize gRPC server", logger.F("err", err))
		os.Exit(1)
	}

	serveErr := make(chan error, 1)
	go func() { serveErr <- srv.Start() }()
	lgr.Info("server started", logger.F("addr", addr))

	register, err := newBootstrap(cfg.DHT.Bootstrap, lgr)
	if err != nil {
		lgr.Error("failed to initialize bootstrap backend", logger.F("err", err))
		srv.Stop()
		os.Exit(1)
	}
	if closer, ok := register.(interface{ Close() error }); ok {
		defer func() { _ = closer.Close() }()
	}

	joinCtx, joinCancel := context.WithTimeout(context.Background(), 10*time.Second)
	peers, err := register.Discover(joinCtx)
	joinCancel()
	if err != nil {
		lgr.Error("failed to resolve bootstrap peers", logger.F("err", err))
		srv.Stop()
		os.Exit(1)
	}
	lgr.Info("resolved bootstrap peers", logger.F("peers", peers))

	joined := false
	for _, peer := range peers {
		joinCtx, joinCancel := context.WithTimeout(context.Background(), 10*time.Second)
		err := n.Join(joinCtx, peer)
		joinCancel()
		if err != nil {
			lgr.Warn("join attempt failed, trying next peer", logger.F("peer", peer), logger.F("err", err))
			continue
		}
		joined = true
		break
	}
	if !joined {
		if err := n.Join(context.Background(), ""); err != nil {
			lgr.Error("failed to form singleton ring", logger.F("err", err))
			srv.Stop()
			os.Exit(1)
		}
	}

	regCtx, regCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := register.Register(regCtx, self); err != nil {
		lgr.Warn("failed to register node", logger.F("err", err))
	} else {
		lgr.Info("node registered with bootstrap backend")
	}
	regCancel()
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := register.Deregister(ctx, self); err != nil {
			lgr.Warn("failed to deregister node", logger.F("err", err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	go n.StartStabilizationLoop(ctx, cfg.DHT.FaultTolerance.StabilizationInterval)
	lgr.Debug("stabilization loop started")

	select {
	case <-ctx.Done():
		lgr.Info("shutdown signal received, leaving ring")
		stop()

		leaveCtx, leaveCancel := context.WithTimeout(context.Background(), 5*time.Second)
		n.Leave(leaveCtx)
		leaveCancel()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		done := make(chan struct{})
		go func() {
			srv.GracefulStop()
			close(done)
		}()
		select {
		case <-done:
			lgr.Info("server stopped gracefully")
		case <-shutdownCtx.Done():
			lgr.Warn("graceful stop timed out, forcing shutdown")
			srv.Stop()
		}

	case err := <-serveErr:
		lgr.Error("gRPC server terminated unexpectedly", logger.F("err", err))
		stop()
		os.Exit(1)
	}
}

// newBootstrap constructs the configured bootstrap backend.
func newBootstrap(cfg config.BootstrapConfig, lgr logger.Logger) (bootstrap.Bootstrap, error) {
	switch cfg.Mode {
	case "static", "init":
		return bootstrap.NewStaticBootstrap(cfg.Peers), nil
	case "dns":
		return bootstrap.NewDNSBootstrap(cfg.DNS, lgr.Named("bootstrap.dns"))
	case "route53":
		return bootstrap.NewRoute53Bootstrap(cfg.Route53)
	default:
		return bootstrap.NewStaticBootstrap(nil), nil
	}
}
