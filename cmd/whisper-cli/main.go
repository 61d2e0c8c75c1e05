// Command whisper-cli transcribes a WAV file with a local whisper model.
//
// Usage:
//
//	whisper-cli -download base.en
//	whisper-cli -model ~/.local/share/whisper-go/models/ggml-base.en.bin audio.wav
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ynot01/whisper-go/internal/audio"
	"github.com/ynot01/whisper-go/internal/config"
	"github.com/ynot01/whisper-go/internal/models"
	"github.com/ynot01/whisper-go/pkg/speech"
	"github.com/ynot01/whisper-go/whisper"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default: ~/.config/whisper-go/config.yaml)")
	modelPath := flag.String("model", "", "path to ggml model file (overrides config)")
	language := flag.String("language", "", "transcription language, or \"auto\" (overrides config)")
	translate := flag.Bool("translate", false, "translate the transcript to English")
	threads := flag.Int("threads", 0, "native compute threads (0 = all CPUs)")
	beamSize := flag.Int("beam", 0, "beam size (<= 1 = greedy decoding)")
	timings := flag.Bool("timings", false, "print native performance counters after the run")
	download := flag.String("download", "", "download a model (e.g. base.en) into the models dir and exit")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	setupLogging(cfg.LogLevel)

	if *download != "" {
		path, err := models.Download(*download, config.DefaultModelsDir())
		if err != nil {
			log.Fatal().Err(err).Str("model", *download).Msg("download failed")
		}
		log.Info().Str("path", path).Msg("model ready")
		return
	}

	if *modelPath != "" {
		cfg.ModelPath = *modelPath
	}
	if *language != "" {
		cfg.Language = *language
	}
	if *translate {
		cfg.Translate = true
	}
	if *threads > 0 {
		cfg.Threads = *threads
	}
	if *beamSize > 0 {
		cfg.BeamSize = *beamSize
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config validation")
	}

	wavPath := flag.Arg(0)
	if wavPath == "" {
		fmt.Fprintln(os.Stderr, "usage: whisper-cli [flags] <file.wav>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	samples, rate, err := audio.DecodeWAVFile(wavPath)
	if err != nil {
		log.Fatal().Err(err).Str("file", wavPath).Msg("decode audio")
	}
	if rate != whisper.SampleRate {
		log.Debug().Int("from", rate).Int("to", whisper.SampleRate).Msg("resampling")
		samples = audio.Resample(samples, rate, whisper.SampleRate)
	}
	log.Info().
		Str("file", wavPath).
		Float64("seconds", float64(len(samples))/float64(whisper.SampleRate)).
		Msg("audio loaded")

	start := time.Now()
	model, err := speech.NewModel(cfg.ModelPath)
	if err != nil {
		log.Fatal().Err(err).Str("model", cfg.ModelPath).
			Msg("load model (run 'whisper-cli -download base.en' to fetch one)")
	}
	defer func() { _ = model.Close() }()

	desc, err := model.Description()
	if err != nil {
		log.Fatal().Err(err).Msg("model description")
	}
	log.Info().
		Str("type", desc).
		Bool("multilingual", model.IsMultilingual()).
		Int("vocab", model.Context().VocabSize()).
		Dur("took", time.Since(start).Round(time.Millisecond)).
		Msg("model loaded")

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

	start = time.Now()
	if _, err := sess.Process(samples); err != nil {
		log.Fatal().Err(err).Msg("transcribe")
	}
	log.Info().
		Dur("took", time.Since(start).Round(time.Millisecond)).
		Str("language", sess.DetectedLanguage()).
		Msg("transcription done")

	segs, err := sess.Segments()
	if err != nil {
		log.Fatal().Err(err).Msg("read segments")
	}
	for _, seg := range segs {
		fmt.Printf("[%8s -> %8s] %s\n",
			seg.Start.Round(10*time.Millisecond),
			seg.End.Round(10*time.Millisecond),
			seg.Text)
	}

	if *timings {
		model.Context().PrintTimings()
	}
}

// loadConfig loads the given path, the default config if one exists, or
// built-in defaults.
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
