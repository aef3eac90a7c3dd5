package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"gopkg.in/yaml.v2"

	"github.com/guild-framework/guild-backend/pkg/cache"
	"github.com/guild-framework/guild-backend/pkg/db"
	guildDB "github.com/guild-framework/guild-backend/pkg/db/guild"
	"github.com/guild-framework/guild-backend/pkg/surveys"
	"github.com/guild-framework/guild-backend/pkg/utils"
)

// Environment variables
const (
	ENV_CONFIG_FILE_PATH = "CONFIG_FILE_PATH"

	// Variables to override "secrets" in the config file
	ENV_GUILD_DB_USERNAME = "GUILD_DB_USERNAME"
	ENV_GUILD_DB_PASSWORD = "GUILD_DB_PASSWORD"

	// Which cycle to launch surveys for
	ENV_CHAPTER_ID = "CHAPTER_ID"
	ENV_CYCLE_ID   = "CYCLE_ID"
)

type config struct {
	// Logging configs
	Logging utils.LoggerConfig `json:"logging" yaml:"logging"`

	// DB configs
	DBConfigs struct {
		GuildDB db.DBConfigYaml `json:"guild_db" yaml:"guild_db"`
	} `json:"db_configs" yaml:"db_configs"`

	// Catalog cache (optional)
	CatalogCache struct {
		RedisAddr string `json:"redis_addr" yaml:"redis_addr"`
		TTL       string `json:"ttl" yaml:"ttl"`
	} `json:"catalog_cache" yaml:"catalog_cache"`

	CycleLaunch struct {
		ChapterID   string   `json:"chapter_id" yaml:"chapter_id"`
		CycleID     string   `json:"cycle_id" yaml:"cycle_id"`
		SurveyKinds []string `json:"survey_kinds" yaml:"survey_kinds"`
		Concurrency int      `json:"concurrency" yaml:"concurrency"`
	} `json:"cycle_launch" yaml:"cycle_launch"`
}

var conf config

var (
	guildDBService *guildDB.GuildDBService
	surveyService  *surveys.Service
)

func init() {
	// Read config from file
	yamlFile, err := os.ReadFile(os.Getenv(ENV_CONFIG_FILE_PATH))
	if err != nil {
		panic(err)
	}

	err = yaml.UnmarshalStrict(yamlFile, &conf)
	if err != nil {
		panic(err)
	}

	// Init logger:
	utils.InitLogger(
		conf.Logging.LogLevel,
		conf.Logging.IncludeSrc,
		conf.Logging.LogToFile,
		conf.Logging.Filename,
		conf.Logging.MaxSize,
		conf.Logging.MaxAge,
		conf.Logging.MaxBackups,
		conf.Logging.CompressOldLogs,
	)

	// Override secrets from environment variables
	secretsOverride()

	// init db
	initDBs()

	// init survey service
	initSurveyService()
}

func secretsOverride() {
	if dbUsername := os.Getenv(ENV_GUILD_DB_USERNAME); dbUsername != "" {
		conf.DBConfigs.GuildDB.Username = dbUsername
	}

	if dbPassword := os.Getenv(ENV_GUILD_DB_PASSWORD); dbPassword != "" {
		conf.DBConfigs.GuildDB.Password = dbPassword
	}

	if chapterID := os.Getenv(ENV_CHAPTER_ID); chapterID != "" {
		conf.CycleLaunch.ChapterID = chapterID
	}

	if cycleID := os.Getenv(ENV_CYCLE_ID); cycleID != "" {
		conf.CycleLaunch.CycleID = cycleID
	}
}

func initDBs() {
	var err error
	guildDBService, err = guildDB.NewGuildDBService(db.DBConfigFromYamlObj(conf.DBConfigs.GuildDB))
	if err != nil {
		slog.Error("Error connecting to Guild DB", slog.String("error", err.Error()))
		panic(err)
	}
}

func initSurveyService() {
	var questions surveys.QuestionCatalog = guildDBService
	var blueprints surveys.BlueprintCatalog = guildDBService

	if conf.CatalogCache.RedisAddr != "" {
		ttl, err := time.ParseDuration(conf.CatalogCache.TTL)
		if err != nil || ttl <= 0 {
			ttl = 5 * time.Minute
		}
		redisClient := redis.NewClient(&redis.Options{Addr: conf.CatalogCache.RedisAddr})
		catalogCache := cache.NewCatalogCache(redisClient, guildDBService, ttl)
		questions = catalogCache
		blueprints = catalogCache
	}

	surveyService = surveys.NewService(
		questions,
		blueprints,
		guildDBService,
		guildDBService,
		guildDBService,
	)
}
