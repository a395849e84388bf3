package main

import (
	"net/http"

	"github.com/questforge/backend/internal/middleware"
	"github.com/questforge/backend/migration"
	"github.com/questforge/backend/pkg/router"
	"github.com/questforge/backend/pkg/xcontext"

	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(clictx *cli.Context) error {
	s.loadConfig(clictx)
	s.loadLogger()
	s.loadDatabase()
	s.loadAuth()
	s.loadRedis()
	s.loadRepos()
	s.loadDomains()
	s.loadRouter()

	s.analysisEngine.Start(s.ctx)
	defer s.analysisEngine.Stop()

	s.server = &http.Server{
		Addr:    xcontext.Configs(s.ctx).ApiServer.Address(),
		Handler: s.router.Handler(),
	}

	xcontext.Logger(s.ctx).Infof("Starting api server on %s", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil {
		return err
	}

	return nil
}

func (s *srv) startMigrate(clictx *cli.Context) error {
	s.loadConfig(clictx)
	s.loadLogger()
	s.loadDatabase()

	if err := migration.AutoMigrate(s.ctx); err != nil {
		return err
	}

	xcontext.Logger(s.ctx).Infof("Migration completed")
	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(s.ctx)
	s.router.AddCloser(middleware.Logger())

	// These following APIs need authentication with Access Token.
	authRouter := s.router.Branch()
	authRouter.Before(middleware.NewAuthVerifier().Middleware())
	{
		// User API
		router.GET(authRouter, "/getUser", s.userDomain.GetUser)

		// Quest API
		router.POST(authRouter, "/createQuest", s.questDomain.Create)

		// Statistic API
		router.GET(authRouter, "/getLeaderBoard", s.statisticDomain.GetLeaderBoard)

		// Verification API
		router.POST(authRouter, "/verification/submit", s.submissionDomain.Submit)
		router.GET(authRouter, "/verification/status", s.submissionDomain.Get)
		router.GET(authRouter, "/verification/pending", s.submissionDomain.GetPendingList)
		router.POST(authRouter, "/verification/manual", s.submissionDomain.Review)
	}

	// Public API.
	router.GET(s.router, "/getQuest", s.questDomain.Get)
	router.GET(s.router, "/getListQuest", s.questDomain.GetList)
}
