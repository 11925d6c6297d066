package main

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/cppla/yatube/config"
	"github.com/cppla/yatube/models"
	"github.com/cppla/yatube/repositories"
	"github.com/cppla/yatube/routes"
	"github.com/cppla/yatube/utils"
)

const usage = `usage: yatube [command]

commands:
  serve                                 run the HTTP server (default)
  migrate                               create or update database tables
  creategroup <slug> <title> [description]  add a post group
`

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}
	defer func() { _ = utils.Logger.Sync() }()

	cmd := "serve"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	var err error
	switch cmd {
	case "serve":
		err = serve(cfg)
	case "migrate":
		_, err = config.InitDatabase(cfg, models.All()...)
		if err == nil {
			utils.Sugar.Info("migration finished")
		}
	case "creategroup":
		err = createGroup(cfg, os.Args[2:])
	case "-h", "--help", "help":
		fmt.Print(usage)
		return
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		utils.Logger.Fatal("command failed", zap.String("command", cmd), zap.Error(err))
	}
}

func serve(cfg config.AppConfig) error {
	db, err := config.InitDatabase(cfg, models.All()...)
	if err != nil {
		return err
	}

	r := routes.SetupRouter(db, cfg, utils.Logger)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	return utils.GraceServer(":"+cfg.AppPort, r)
}

func createGroup(cfg config.AppConfig, args []string) error {
	if len(args) < 2 {
		return errors.New("creategroup needs <slug> <title> [description]")
	}
	db, err := config.InitDatabase(cfg, models.All()...)
	if err != nil {
		return err
	}

	group := &models.Group{Slug: args[0], Title: args[1]}
	if len(args) > 2 {
		group.Description = args[2]
	}
	if err := repositories.NewContentRepository(db).CreateGroup(group); err != nil {
		return fmt.Errorf("create group %q: %w", group.Slug, err)
	}
	utils.Logger.Info("group created", zap.Uint("id", group.ID), zap.String("slug", group.Slug))
	return nil
}
