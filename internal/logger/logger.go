package logger

import (
	"io"
	"net"
	"os"
	"strings"

	logrustash "github.com/bshuster-repo/logrus-logstash-hook"
	"github.com/elastic/go-elasticsearch/v7"
	"github.com/sirupsen/logrus"
	"gopkg.in/go-extras/elogrus.v7"
)

const serviceName = "fitbuddy"

// Config describes how the application logger should behave.
type Config struct {
	Level        string
	Format       string
	LogstashURL  string
	ElasticURL   string
	ElasticIndex string
	Output       io.Writer
}

// New builds a logrus logger. Shipping hooks that cannot be set up are
// reported on the logger itself and skipped.
func New(cfg Config) *logrus.Logger {
	log := logrus.New()

	log.Out = cfg.Output
	if log.Out == nil {
		log.Out = os.Stdout
	}
	log.SetLevel(parseLevel(cfg.Level))

	if strings.EqualFold(cfg.Format, "json") {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	if cfg.LogstashURL != "" {
		conn, err := net.Dial("udp", cfg.LogstashURL)
		if err != nil {
			log.WithError(err).Warn("logstash hook disabled")
		} else {
			log.AddHook(logrustash.New(conn, logrustash.DefaultFormatter(logrus.Fields{"type": serviceName})))
		}
	}

	if cfg.ElasticURL != "" {
		if err := addElasticHook(log, cfg); err != nil {
			log.WithError(err).Warn("elasticsearch hook disabled")
		}
	}

	return log
}

func addElasticHook(log *logrus.Logger, cfg Config) error {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{cfg.ElasticURL},
	})
	if err != nil {
		return err
	}
	index := cfg.ElasticIndex
	if index == "" {
		index = serviceName
	}
	hook, err := elogrus.NewAsyncElasticHook(client, serviceName, log.GetLevel(), index)
	if err != nil {
		return err
	}
	log.AddHook(hook)
	return nil
}

func parseLevel(level string) logrus.Level {
	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}
