package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/edu-platform/config"
	"github.com/oksasatya/edu-platform/pkg/helpers"
	"github.com/oksasatya/edu-platform/pkg/mailer"
	mailtpl "github.com/oksasatya/edu-platform/pkg/mailer/templates"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-email-worker", cfg.Env)

	if !cfg.MailSendEnabled {
		logger.Info("MAIL_SEND_ENABLED=false; email worker disabled (no real emails will be sent)")
		return
	}
	if cfg.RabbitMQURL == "" || cfg.RabbitMQEmailQueue == "" {
		logger.Fatal("RabbitMQ not configured")
	}
	if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
		logger.Fatal("Mailgun not configured")
	}

	consumer, err := helpers.NewRabbitConsumer(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue, 16)
	if err != nil {
		logger.Fatalf("rabbitmq: %v", err)
	}
	defer consumer.Close()

	msgs, err := consumer.Deliveries()
	if err != nil {
		logger.Fatalf("consume: %v", err)
	}

	mg := mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)
	ctx := context.Background()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		for msg := range msgs {
			handle(ctx, logger, mg, msg)
		}
		close(done)
	}()

	logger.WithField("queue", cfg.RabbitMQEmailQueue).Info("email worker listening")
	<-stop
	logger.Info("shutting down...")
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}

// handle renders and sends one job. Malformed or unrenderable jobs are dropped;
// send failures are requeued.
func handle(ctx context.Context, logger logrus.FieldLogger, mg *mailer.Mailgun, msg amqp.Delivery) {
	var job mailer.EmailJob
	if err := json.Unmarshal(msg.Body, &job); err != nil {
		helpers.LogWarn(logger, "bad message", err, nil)
		_ = msg.Nack(false, false)
		return
	}
	helpers.NormalizeJob(&job)

	subject, text, html := job.Subject, job.Text, job.HTML
	if job.Template != "" {
		s, t, h, err := mailtpl.Render(job.Template, job.Data)
		if err != nil {
			helpers.LogError(logger, "render failed", err, logrus.Fields{"template": job.Template})
			_ = msg.Nack(false, false)
			return
		}
		subject, text, html = s, t, h
	}

	var tags []string
	if job.Template != "" {
		tags = append(tags, job.Template)
	}
	if err := mg.Send(ctx, job.To, subject, text, html, tags...); err != nil {
		helpers.LogWarn(logger, "send failed", err, logrus.Fields{"template": job.Template, "to": job.To})
		_ = msg.Nack(false, true)
		return
	}
	_ = msg.Ack(false)
	logger.WithFields(logrus.Fields{"template": job.Template, "to": job.To}).Info("email sent")
}
