package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/saferide/saferide/internal/client"
	"github.com/saferide/saferide/internal/config"
	"github.com/saferide/saferide/internal/domain/payment"
	"github.com/saferide/saferide/internal/domain/trip"
	"github.com/saferide/saferide/internal/notify"
	"github.com/saferide/saferide/internal/service/lifecycle"
	paymentsvc "github.com/saferide/saferide/internal/service/payment"
	"github.com/saferide/saferide/internal/session"
	"github.com/saferide/saferide/pkg/errors"
	"github.com/saferide/saferide/pkg/logger"
	"github.com/saferide/saferide/pkg/monitoring"
)

// The simulator runs the passenger journey end to end against the
// configured backend: sign up, request a trip, track it through the
// lifecycle, pay for it and rate the driver.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer appLogger.Sync()

	appLogger.Info("Starting SafeRide passenger simulator",
		logger.String("base_url", cfg.API.BaseURL),
	)

	nrApp, err := monitoring.New(monitoring.Config{
		LicenseKey: cfg.NewRelic.LicenseKey,
		AppName:    cfg.NewRelic.AppName,
		Enabled:    cfg.NewRelic.Enabled,
	})
	if err != nil {
		appLogger.Warn("Failed to initialize New Relic", logger.Err(err))
		nrApp, _ = monitoring.New(monitoring.Config{})
	}
	defer nrApp.Shutdown(10 * time.Second)

	sess := session.New()
	api := client.New(client.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
	}, sess, appLogger)
	toasts := notify.NewLogNotifier(appLogger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, api, toasts, nrApp, appLogger); err != nil {
		appLogger.Error("Simulation ended with error", logger.Err(err))
		os.Exit(1)
	}
	appLogger.Info("Simulation finished")
}

func run(ctx context.Context, cfg *config.Config, api *client.Client, toasts notify.Notifier, nrApp *monitoring.NewRelicApp, appLogger *logger.Logger) error {
	// A throwaway passenger account per run.
	err := api.Register(ctx, client.RegisterRequest{
		Name:     "Demo Passenger",
		Email:    fmt.Sprintf("passenger-%s@saferide.dev", uuid.NewString()[:8]),
		Phone:    "0712345678",
		Password: uuid.NewString(),
		Role:     "passenger",
	})
	if err != nil {
		return err
	}

	pickup := trip.Location{Lat: -1.2676, Lng: 36.8108, Address: "Westlands, Nairobi"}
	dropoff := trip.Location{Lat: -1.3194, Lng: 36.7096, Address: "Karen, Nairobi"}

	t, err := api.RequestTrip(ctx, pickup, dropoff, true)
	if err != nil {
		return err
	}
	toasts.Info(fmt.Sprintf("Trip requested: %s to %s, KES %.0f", pickup.Address, dropoff.Address, t.Fare))
	nrApp.RecordTripRequested(t.ID, t.Fare)

	terminal := make(chan trip.Status, 1)
	presenter := lifecycle.NewPresenter(lifecycle.PresenterConfig{
		TickInterval:  cfg.Lifecycle.TickInterval,
		TerminalDwell: cfg.Lifecycle.TerminalDwell,
		DriverName:    "Your driver",
		Machine: lifecycle.MachineConfig{
			InitialETA: cfg.Lifecycle.InitialETA,
		},
	}, lifecycle.Callbacks{
		OnTerminal: func(st trip.Status) {
			terminal <- st
		},
	}, appLogger)
	defer presenter.Close()

	presenter.Track()

	// Narrate status changes until the trip settles.
	narrate := time.NewTicker(cfg.Lifecycle.TickInterval)
	defer narrate.Stop()

	last := presenter.Status()
	toasts.Info(presenter.Message())
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-narrate.C:
			st := presenter.Status()
			if st != last {
				last = st
				toasts.Info(presenter.Message())
			}
			// The driver starts the trip as soon as they arrive.
			if st == trip.StatusArrived {
				presenter.StartTrip()
			}

		case st := <-terminal:
			nrApp.RecordTripEnded(t.ID, string(st))
			if st != trip.StatusCompleted {
				toasts.Error(presenter.Message())
				return nil
			}
			toasts.Success(presenter.Message())
			return settleUp(ctx, cfg, api, toasts, nrApp, appLogger, t)
		}
	}
}

// settleUp runs the post-trip flow: M-Pesa payment then rating.
func settleUp(ctx context.Context, cfg *config.Config, api *client.Client, toasts notify.Notifier, nrApp *monitoring.NewRelicApp, appLogger *logger.Logger, t *trip.Trip) error {
	phone := api.Session().User().Phone

	p, err := api.InitiatePayment(ctx, t.ID, t.Fare, phone)
	if err != nil {
		toasts.Error("Payment failed. Please try again.")
		return err
	}
	toasts.Info("STK Push sent to your phone. Please enter your M-Pesa PIN.")

	outcome := make(chan payment.Status, 1)
	poller := paymentsvc.NewPoller(api, paymentsvc.Config{
		Interval: cfg.Payment.PollInterval,
		Timeout:  cfg.Payment.PollTimeout,
	}, appLogger)
	poll := poller.Start(p.ID, func(st payment.Status) {
		outcome <- st
	})
	defer poll.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case st := <-outcome:
		nrApp.RecordPaymentOutcome(p.ID, string(st), p.Amount)
		if st != payment.StatusPaid {
			cause := errors.ErrPaymentFailed
			if st == payment.StatusTimeout {
				cause = errors.ErrPaymentTimeout
			}
			toasts.Error(cause.Error() + ". Please try again.")
			return nil
		}
	}
	toasts.Success("Payment completed successfully!")

	if err := api.RateTrip(ctx, t.ID, 5, "Great ride"); err != nil {
		toasts.Error("Could not save rating")
		return nil
	}
	toasts.Success("Rating saved")
	return nil
}
