package main

import (
	"context"
	"net/http"

	"github.com/questforge/backend/config"
	"github.com/questforge/backend/internal/domain"
	"github.com/questforge/backend/internal/domain/analysis"
	"github.com/questforge/backend/internal/domain/notification"
	"github.com/questforge/backend/internal/domain/settle"
	"github.com/questforge/backend/internal/model"
	"github.com/questforge/backend/internal/repository"
	"github.com/questforge/backend/pkg/authenticator"
	"github.com/questforge/backend/pkg/logger"
	"github.com/questforge/backend/pkg/router"
	"github.com/questforge/backend/pkg/xcontext"
	"github.com/questforge/backend/pkg/xredis"

	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	app *cli.App
	ctx context.Context

	userRepo       repository.UserRepository
	questRepo      repository.QuestRepository
	submissionRepo repository.SubmissionRepository

	userDomain       domain.UserDomain
	questDomain      domain.QuestDomain
	submissionDomain domain.SubmissionDomain
	statisticDomain  domain.StatisticDomain

	redisClient    xredis.Client
	notifier       notification.Notifier
	analysisEngine *analysis.Engine
	settler        *settle.Service

	router *router.Router
	server *http.Server
}

func (s *srv) loadConfig(clictx *cli.Context) {
	cfg, err := config.Load(clictx.String("config"))
	if err != nil {
		panic(err)
	}

	s.ctx = xcontext.WithConfigs(context.Background(), cfg)
}

func (s *srv) loadLogger() {
	level := logger.INFO
	if xcontext.Configs(s.ctx).Env == "local" {
		level = logger.DEBUG
	}

	s.ctx = xcontext.WithLogger(s.ctx, logger.NewLogger(level))
}

func (s *srv) loadDatabase() {
	cfg := xcontext.Configs(s.ctx).Database
	db, err := gorm.Open(mysql.Open(cfg.ConnectionString()), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	s.ctx = xcontext.WithDB(s.ctx, db)
}

func (s *srv) loadAuth() {
	cfg := xcontext.Configs(s.ctx).Auth
	s.ctx = xcontext.WithTokenEngine(s.ctx,
		authenticator.NewTokenEngine[model.AccessToken](cfg.TokenSecret, cfg.AccessToken.Expiration))
}

func (s *srv) loadRedis() {
	client, err := xredis.NewClient(s.ctx)
	if err != nil {
		panic(err)
	}

	s.redisClient = client
	s.notifier = notification.NewRedisNotifier(s.redisClient)
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.questRepo = repository.NewQuestRepository()
	s.submissionRepo = repository.NewSubmissionRepository()
}

func (s *srv) loadDomains() {
	s.settler = settle.NewService(s.questRepo, s.userRepo, s.notifier, s.redisClient)
	s.analysisEngine = analysis.NewEngine(s.submissionRepo, s.questRepo, s.settler)

	s.userDomain = domain.NewUserDomain(s.userRepo)
	s.questDomain = domain.NewQuestDomain(s.questRepo, s.userRepo)
	s.submissionDomain = domain.NewSubmissionDomain(
		s.submissionRepo, s.questRepo, s.userRepo, s.analysisEngine, s.settler)
	s.statisticDomain = domain.NewStatisticDomain(s.userRepo, s.redisClient)
}
