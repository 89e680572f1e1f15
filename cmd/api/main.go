package main

import (
	"context"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/AgendaCitasCO/cita-scheduler/internal/audit"
	"github.com/AgendaCitasCO/cita-scheduler/internal/config"
	dbpkg "github.com/AgendaCitasCO/cita-scheduler/internal/db"
	infracal "github.com/AgendaCitasCO/cita-scheduler/internal/infra/calendar"
	"github.com/AgendaCitasCO/cita-scheduler/internal/infra/holidays"
	infraledger "github.com/AgendaCitasCO/cita-scheduler/internal/infra/ledger"
	"github.com/AgendaCitasCO/cita-scheduler/internal/infra/notifier"
	"github.com/AgendaCitasCO/cita-scheduler/internal/routes"
	"github.com/AgendaCitasCO/cita-scheduler/internal/schedule"
	"github.com/AgendaCitasCO/cita-scheduler/internal/usecase/booking"
	"github.com/AgendaCitasCO/cita-scheduler/internal/validators"
)

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Str("service", "cita-scheduler").Logger()

	cfg := config.Load()
	ctx := context.Background()
	loc := cfg.Location()

	segments, err := schedule.ParseSegments(cfg.BusinessSegments)
	if err != nil {
		log.Fatal().Err(err).Str("segments", cfg.BusinessSegments).Msg("invalid BUSINESS_SEGMENTS")
	}
	grid := schedule.Grid{Segments: segments, SlotMinutes: cfg.SlotMinutes, Loc: loc}

	rules, err := validators.NewRules(
		cfg.EmailPattern,
		cfg.PhonePattern,
		cfg.DocumentPattern,
		cfg.CheckEmailDomain,
		loc,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid validator configuration")
	}

	// ======================================================
	// PORTS
	// ======================================================
	var (
		ledgerPort schedule.Ledger
		auditSink  audit.Sink
	)
	switch cfg.LedgerBackend {
	case "sheets":
		sl, err := infraledger.NewSheetsLedger(ctx, infraledger.SheetsConfig{
			SpreadsheetID:   cfg.SpreadsheetID,
			SheetName:       cfg.SheetName,
			SchemaVersion:   cfg.SchemaVersion,
			CredentialsFile: cfg.CredentialsFile,
			Loc:             loc,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("sheets ledger unavailable")
		}
		ledgerPort = sl
		auditSink = audit.NewLogSink(log)
	default:
		db := dbpkg.NewDB(cfg)
		ledgerPort = infraledger.NewGormLedger(db)
		auditSink = audit.NewGormSink(db)
	}

	calendarPort, err := infracal.NewGoogleCalendar(ctx, infracal.Config{
		CalendarID:      cfg.CalendarID,
		CredentialsFile: cfg.CredentialsFile,
		Timezone:        cfg.Timezone,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("calendar unavailable")
	}

	var locks booking.DateLocker
	if cfg.RedisAddr != "" {
		locks = infraledger.NewRedisDateLocker(cfg.RedisAddr)
	} else {
		locks = booking.NewMutexDateLocker()
	}

	deps := booking.Deps{
		Ledger:   ledgerPort,
		Calendar: calendarPort,
		Notifier: notifier.NewSMTPNotifier(notifier.Config{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			User:     cfg.SMTPUser,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
		}),
		Holidays: holidays.NewProvider(),
		Locks:    locks,

		Grid:         grid,
		WeeklyOffDay: cfg.WeeklyOffDay,
		Jurisdiction: cfg.HolidayJurisdiction,

		Rules:           rules,
		DurationMinutes: cfg.DurationMinutes,

		Audit: audit.NewDispatcher(auditSink, log),
		Log:   log,
	}

	// ======================================================
	// HTTP
	// ======================================================
	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, deps, cfg)

	log.Info().Str("addr", cfg.Addr()).Msg("server running")
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
