package persist

import (
	"fmt"
	"net/url"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	defaultPostgresHost    = "localhost"
	defaultPostgresPort    = 5432
	defaultPostgresSSLMode = "disable"
)

// PostgresOption configures a Postgres connection for a GormSink.
type PostgresOption struct {
	Host       string
	Port       int
	User       string
	Password   string
	Database   string
	SSLMode    string
	ConnString string
}

func (opt PostgresOption) dsn() string {
	if opt.ConnString != "" {
		return opt.ConnString
	}

	host := opt.Host
	if host == "" {
		host = defaultPostgresHost
	}
	port := opt.Port
	if port == 0 {
		port = defaultPostgresPort
	}
	sslMode := opt.SSLMode
	if sslMode == "" {
		sslMode = defaultPostgresSSLMode
	}

	u := &url.URL{
		Scheme: "postgres",
		Host:   fmt.Sprintf("%s:%d", host, port),
	}
	if opt.User != "" {
		if opt.Password != "" {
			u.User = url.UserPassword(opt.User, opt.Password)
		} else {
			u.User = url.User(opt.User)
		}
	}
	if opt.Database != "" {
		u.Path = "/" + opt.Database
	}
	query := url.Values{}
	query.Set("sslmode", sslMode)
	u.RawQuery = query.Encode()

	return u.String()
}

// OpenPostgres opens a gorm connection and migrates the historical
// record table.
func OpenPostgres(opt PostgresOption) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(opt.dsn()), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&historicalRecord{}); err != nil {
		return nil, err
	}
	return db, nil
}

// historicalRecord is the row shape GormSink persists into.
type historicalRecord struct {
	ID          uint `gorm:"primaryKey"`
	ServiceType string `gorm:"index"`
	PersistKey  string `gorm:"index"`
	Line        string
	RecordedAt  time.Time
}

// GormSink persists records into a Postgres table via gorm, one row
// per PersistData call, tagged with a fixed service type.
type GormSink struct {
	db          *gorm.DB
	serviceType string
}

// NewGormSink constructs a sink that tags every row with serviceType
// (e.g. "POSITION", "RISK") so a single table can serve every service.
func NewGormSink(db *gorm.DB, serviceType string) *GormSink {
	return &GormSink{db: db, serviceType: serviceType}
}

// Persist inserts one row recording key and line.
func (s *GormSink) Persist(key, line string) error {
	return s.db.Create(&historicalRecord{
		ServiceType: s.serviceType,
		PersistKey:  key,
		Line:        line,
		RecordedAt:  time.Now(),
	}).Error
}
