package main

import (
	"aquabot/internal/adapters/device"
	"aquabot/internal/adapters/handler"
	"aquabot/internal/adapters/metrics"
	"aquabot/internal/adapters/scheduler"
	"aquabot/internal/adapters/telegram"
	"aquabot/internal/config"
	"aquabot/internal/core/domain"
	"aquabot/internal/core/domain/command"
	"aquabot/internal/core/port"
	"aquabot/internal/core/service"
	"context"
	"errors"
	"flag"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "path to config.toml")
	flag.Parse()

	log.Info().Msg("starting aquabot...")

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("could not load config")
	}

	zerolog.SetGlobalLevel(cfg.Bot.Level())
	if cfg.Bot.PrettyLogs {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	m := metrics.New()
	if cfg.Metrics.ListenAddress != "" {
		go func() {
			if err := m.Serve(ctx, cfg.Metrics.ListenAddress); err != nil {
				log.Err(err).Msg("metrics server stopped")
			}
		}()
	}

	transport, err := telegram.NewTransport(telegram.TransportConfig{
		Token:              cfg.Telegram.BotToken,
		BaseURL:            cfg.Telegram.APIBaseURL,
		Timeout:            cfg.Bot.RequestTimeout,
		CAFile:             cfg.Telegram.CAFile,
		InsecureSkipVerify: cfg.Telegram.InsecureSkipVerify,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed initializing telegram transport")
	}

	if cfg.Telegram.OperatorChatID == "" {
		log.Warn().Msg("no operator chat configured, commands will be ignored and nothing will be sent")
	}

	client := telegram.NewClient(telegram.ClientParams{
		Transport:  transport,
		Tracker:    service.NewUpdateTracker(),
		OperatorID: cfg.Telegram.OperatorChatID,
		MaxRetries: cfg.Send.MaxRetries,
		Backoff:    cfg.Send.Backoff,
		Metrics:    m,
	})

	sensors := device.NewSensorCell()
	relays := device.NewRelayBank(m, domain.LED, domain.Pump)

	registry := command.NewRegistry()
	registry.Register("start", command.NewStart())
	registry.Register("help", command.NewHelp())
	registry.Register("led", command.NewRelay(relays, domain.LED, "LED"))
	registry.Register("pompa", command.NewRelay(relays, domain.Pump, "pump"))
	registry.Register("air", command.NewWater(sensors))
	registry.Register("status", command.NewStatus(sensors, relays))
	registry.Register("debug", command.NewDebug(client, sensors))

	commandHandler := handler.NewCommand(handler.CommandParams{
		Bot:        client,
		Registry:   registry,
		Authorizer: service.NewAuthorizer(cfg.Telegram.OperatorChatID, client),
		Network:    device.NewNetworkProbe(apiHost(cfg.Telegram.APIBaseURL), cfg.Bot.RequestTimeout),
		Metrics:    m,
	})

	info, err := client.GetBotInfo(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("could not fetch bot info")
	} else {
		log.Info().Str("name", info.DisplayName).Msg("connected to telegram")
	}

	if cfg.Bot.SkipStaleUpdates {
		commandHandler.DiscardPending(ctx)
	}

	if cfg.Bot.ReadyMessage != "" {
		if err := client.SendMessage(ctx, cfg.Bot.ReadyMessage); err != nil && !errors.Is(err, domain.ErrNoOperator) {
			log.Err(err).Msg("failed to send ready message")
		}
	}

	s, err := scheduler.New()
	if err != nil {
		log.Fatal().Err(err).Msg("failed initializing scheduler")
	}

	var temperature, level port.Probe
	if cfg.Sensor.TemperaturePath != "" {
		temperature = device.NewW1Thermometer(cfg.Sensor.TemperaturePath)
	}
	if cfg.Sensor.LevelPath != "" {
		level = device.NewADCLevel(cfg.Sensor.LevelPath, cfg.Sensor.LevelMaxRaw)
	}

	sampler := device.NewSampler(temperature, level, sensors, m)

	if err := s.Every(ctx, "sensors", cfg.Sensor.Interval, sampler.Sample); err != nil {
		log.Fatal().Err(err).Msg("failed to schedule sensor sampling")
	}

	if err := s.Every(ctx, "poll", cfg.Bot.PollInterval, commandHandler.Handle); err != nil {
		log.Fatal().Err(err).Msg("failed to schedule polling")
	}

	s.Start()
	log.Info().Dur("interval", cfg.Bot.PollInterval).Msg("bot polling")

	<-ctx.Done()

	log.Info().Msg("shutting down...")
	if err := s.Stop(); err != nil {
		log.Err(err).Msg("failed to stop scheduler")
	}
}

func apiHost(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil || u.Hostname() == "" {
		u, _ = url.Parse(telegram.DefaultAPIBaseURL)
	}

	return u.Hostname()
}
