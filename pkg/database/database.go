package database

import (
	"course_quest_backend/internal/config"
	"course_quest_backend/internal/model"
	"course_quest_backend/pkg/logger"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// Open 按配置的驱动建立连接，不做迁移
func Open(cfg *config.DatabaseConfig, logLevel gormlogger.LogLevel) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case DriverMySQL:
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
			cfg.User,
			cfg.Password,
			cfg.Host,
			cfg.Port,
			cfg.DBName,
			cfg.Charset,
			cfg.ParseTime,
		)
		dialector = mysql.Open(dsn)
	case DriverSQLite, "":
		dialector = sqlite.Open(cfg.Path)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	return gorm.Open(dialector, &gorm.Config{
		Logger:         gormlogger.Default.LogMode(logLevel),
		TranslateError: true,
	})
}

// Migrate 建表并写入默认成就目录
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(model.Migratables()...); err != nil {
		return err
	}
	return SeedAchievements(db)
}

// SeedAchievements 按 condition 补齐默认成就，已存在的不覆盖
func SeedAchievements(db *gorm.DB) error {
	for _, def := range model.DefaultAchievements {
		var existing model.Achievement
		err := db.Where(&model.Achievement{Condition: def.Condition}).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		a := def
		if err := db.Create(&a).Error; err != nil {
			return err
		}
		logger.Log.Info("Seeded achievement", zap.String("condition", a.Condition))
	}
	return nil
}

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	logLevel := gormlogger.Warn
	if cfg.Server.Mode == "debug" {
		logLevel = gormlogger.Info
	}

	db, err := Open(&cfg.Database, logLevel)
	if err != nil {
		return nil, err
	}

	logger.Log.Info("Database connection established", zap.String("driver", cfg.Database.Driver))

	// release 模式下默认跳过迁移，除非命令行强制
	if cfg.Server.Mode != "release" || cfg.ForceMigrate {
		if err := Migrate(db); err != nil {
			return nil, err
		}
		logger.Log.Info("Database migration completed")
	}

	return db, nil
}
