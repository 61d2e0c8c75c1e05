// Command whisper-stream records from the default microphone until
// interrupted, then transcribes the capture with a local whisper model.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ynot01/whisper-go/internal/audio"
	"github.com/ynot01/whisper-go/internal/config"
	"github.com/ynot01/whisper-go/pkg/speech"
	"github.com/ynot01/whisper-go/whisper"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default: ~/.config/whisper-go/config.yaml)")
	modelPath := flag.String("model", "", "path to ggml model file (overrides config)")
	language := flag.String("language", "", "transcription language, or \"auto\" (overrides config)")
	translate := flag.Bool("translate", false, "translate the transcript to English")
	initConfig := flag.Bool("init-config", false, "write a default config file and exit")
	flag.Parse()

	if *initConfig {
		path, err := config.WriteDefault()
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
		if path == "" {
			fmt.Println("config already exists at", config.DefaultConfigPath())
		} else {
			fmt.Println("wrote", path)
		}
		return
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	setupLogging(cfg.LogLevel)

	if *modelPath != "" {
		cfg.ModelPath = *modelPath
	}
	if *language != "" {
		cfg.Language = *language
	}
	if *translate {
		cfg.Translate = true
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config validation")
	}

	model, err := speech.NewModel(cfg.ModelPath)
	if err != nil {
		log.Fatal().Err(err).Str("model", cfg.ModelPath).Msg("load model")
	}
	defer func() { _ = model.Close() }()

	sess, err := model.NewSession(speech.Options{
		Language:  cfg.Language,
		Translate: cfg.Translate,
		Threads:   cfg.Threads,
		BeamSize:  cfg.BeamSize,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("create session")
	}
	defer func() { _ = sess.Close() }()

	rec, err := audio.NewRecorder(cfg.Audio.SampleRate, cfg.Audio.Channels)
	if err != nil {
		log.Fatal().Err(err).Msg("init audio")
	}
	defer func() { _ = rec.Close() }()

	if err := rec.Start(); err != nil {
		log.Fatal().Err(err).Msg("start capture")
	}
	log.Info().Msg("recording, press Ctrl-C to stop")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	signal.Stop(sigCh)

	samples := rec.Stop()
	log.Info().Dur("captured", rec.Duration().Round(time.Millisecond)).Msg("capture stopped")
	if len(samples) == 0 {
		log.Fatal().Msg("no audio captured")
	}
	if int(cfg.Audio.SampleRate) != whisper.SampleRate {
		samples = audio.Resample(samples, int(cfg.Audio.SampleRate), whisper.SampleRate)
	}

	start := time.Now()
	text, err := sess.Process(samples)
	if err != nil {
		log.Fatal().Err(err).Msg("transcribe")
	}
	log.Info().
		Dur("took", time.Since(start).Round(time.Millisecond)).
		Str("language", sess.DetectedLanguage()).
		Msg("transcription done")

	fmt.Println(text)
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	defPath := config.DefaultConfigPath()
	if _, err := os.Stat(defPath); err == nil {
		return config.Load(defPath)
	}
	return config.Default(), nil
}

func setupLogging(level string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
