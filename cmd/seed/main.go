// Command seed fills a salon with demo catalog data for local development:
// ten services, five masters with memberships and weekly schedules. The
// salon is created when it does not exist yet. Existing catalog data of the
// salon is wiped first, so the command is safe to re-run.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"salon_booking_backend/migrations"
	"salon_booking_backend/platform/config"
	"salon_booking_backend/platform/db"
	"salon_booking_backend/platform/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

type seedService struct {
	name     string
	price    int
	duration int
}

type seedMaster struct {
	name           string
	specialization string
	description    string
	services       []int // indexes into the services slice
	days           []int
	startTime      string
	endTime        string
}

var demoServices = []seedService{
	{"Женская стрижка + укладка", 2500, 60},
	{"Окрашивание корней", 3500, 90},
	{"Сложное окрашивание (Airtouch)", 8000, 240},
	{"Уход 'Счастье для волос'", 4000, 90},
	{"Маникюр с покрытием Gel", 2200, 90},
	{"Снятие + Маникюр (без покрытия)", 1200, 60},
	{"Педикюр SMART полный", 2800, 90},
	{"Архитектура бровей (хна/краска)", 1200, 45},
	{"Ламинирование ресниц", 2500, 60},
	{"Чистка лица комбинированная", 3500, 90},
}

var demoMasters = []seedMaster{
	{"Елена Волкова", "Топ-стилист по волосам", "Эксперт по блонду.", []int{0, 1, 2, 3}, []int{1, 3, 5}, "10:00", "20:00"},
	{"Алина Соколова", "Мастер маникюра", "Идеальные блики.", []int{4, 5, 6}, []int{2, 4, 6}, "09:00", "21:00"},
	{"Мария Ким", "Бровист", "Естественный взгляд.", []int{7, 8}, []int{2, 4, 6}, "09:00", "21:00"},
	{"Виктория Романова", "Врач-косметолог", "Медицинское образование.", []int{9, 3}, []int{1, 3, 5}, "10:00", "20:00"},
	{"Дарья Новикова", "Junior-мастер", "Старательный мастер.", []int{0, 4}, []int{6, 7}, "10:00", "18:00"},
}

func main() {
	login := flag.String("login", "salon_elegans", "salon login name")
	title := flag.String("title", "Салон красоты Элеганс", "salon display title")
	token := flag.String("token", "demo-salon-token", "bot token for the salon")
	password := flag.String("password", "admin", "admin password for the salon")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Env)

	ctx := context.Background()
	if err := db.RunMigrations(ctx, cfg.DatabaseURL, migrations.FS); err != nil {
		log.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	salonID, err := ensureSalon(ctx, pool, *login, *title, *token, *password, cfg.BusinessTimezone)
	if err != nil {
		log.Error("failed to ensure salon", "error", err)
		os.Exit(1)
	}
	log.Info("seeding salon", "salon_id", salonID, "login", *login)

	if err := seedCatalog(ctx, pool, salonID); err != nil {
		log.Error("failed to seed catalog", "error", err)
		os.Exit(1)
	}
	log.Info("demo data loaded", "services", len(demoServices), "masters", len(demoMasters))
}

func ensureSalon(ctx context.Context, pool *pgxpool.Pool, login, title, token, password, timezone string) (int64, error) {
	var id int64
	err := pool.QueryRow(ctx, `SELECT id FROM salons WHERE login_name = $1`, login).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != pgx.ErrNoRows {
		return 0, fmt.Errorf("failed to look up salon: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("failed to hash password: %w", err)
	}

	err = pool.QueryRow(ctx,
		`INSERT INTO salons (login_name, display_title, bot_token, admin_password_hash, active, timezone)
			VALUES ($1, $2, $3, $4, TRUE, $5) RETURNING id`,
		login, title, token, string(hash), timezone,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create salon: %w", err)
	}
	return id, nil
}

func seedCatalog(ctx context.Context, pool *pgxpool.Pool, salonID int64) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Wipe the salon's previous demo data. Appointments go first so the
	// restrict constraints do not fire.
	wipe := []string{
		`DELETE FROM appointments WHERE salon_id = $1`,
		`DELETE FROM schedules WHERE master_id IN (SELECT id FROM masters WHERE salon_id = $1)`,
		`DELETE FROM master_services WHERE master_id IN (SELECT id FROM masters WHERE salon_id = $1)`,
		`DELETE FROM masters WHERE salon_id = $1`,
		`DELETE FROM services WHERE salon_id = $1`,
	}
	for _, query := range wipe {
		if _, err := tx.Exec(ctx, query, salonID); err != nil {
			return fmt.Errorf("failed to wipe old data: %w", err)
		}
	}

	serviceIDs := make([]int64, len(demoServices))
	for i, svc := range demoServices {
		err := tx.QueryRow(ctx,
			`INSERT INTO services (salon_id, name, price, duration_minutes)
				VALUES ($1, $2, $3, $4) RETURNING id`,
			salonID, svc.name, svc.price, svc.duration,
		).Scan(&serviceIDs[i])
		if err != nil {
			return fmt.Errorf("failed to insert service %q: %w", svc.name, err)
		}
	}

	for _, m := range demoMasters {
		var masterID int64
		err := tx.QueryRow(ctx,
			`INSERT INTO masters (salon_id, name, specialization, description)
				VALUES ($1, $2, $3, $4) RETURNING id`,
			salonID, m.name, m.specialization, m.description,
		).Scan(&masterID)
		if err != nil {
			return fmt.Errorf("failed to insert master %q: %w", m.name, err)
		}

		for _, idx := range m.services {
			if _, err := tx.Exec(ctx,
				`INSERT INTO master_services (master_id, service_id) VALUES ($1, $2)`,
				masterID, serviceIDs[idx],
			); err != nil {
				return fmt.Errorf("failed to link master %q: %w", m.name, err)
			}
		}

		for _, day := range m.days {
			if _, err := tx.Exec(ctx,
				`INSERT INTO schedules (master_id, day_of_week, start_time, end_time)
					VALUES ($1, $2, $3::time, $4::time)`,
				masterID, day, m.startTime, m.endTime,
			); err != nil {
				return fmt.Errorf("failed to insert schedule for %q: %w", m.name, err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit seed data: %w", err)
	}
	return nil
}
