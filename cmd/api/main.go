package main

import (
	"context"
	"net/http"

	"github.com/masanorih/address2zip/internal/config"
	"github.com/masanorih/address2zip/internal/dataset"
	"github.com/masanorih/address2zip/internal/handler"
	"github.com/masanorih/address2zip/internal/index"
	"github.com/masanorih/address2zip/internal/models"
	"github.com/masanorih/address2zip/internal/service"

	_ "github.com/masanorih/address2zip/docs"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//	@title			address2zip API
//	@description	Resolves free-form Japanese address strings to 7-digit postal codes.
//	@version		1.0
//	@BasePath		/

func main() {
	config, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	rows := loadDataset(config)
	log.Info().Int("rows", len(rows)).Msg("dataset loaded")

	ix := index.Build(rows)
	if ix.Rows() == 0 {
		log.Fatal().Msg("postal index is empty")
	}
	log.Info().Int("rows", ix.Rows()).Msg("postal index built")

	zipcodeService := service.NewZipcodeService(ix)
	zipcodeHandler := handler.NewZipcodeHandler(zipcodeService)

	r := gin.Default()
	r.LoadHTMLFiles("templates/index.html")

	r.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, "index.html", nil)
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
		})
	})

	r.POST("/address2zipcode", zipcodeHandler.Zipcode)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.Run(config.ServerAddress)
}

func loadDataset(cfg config.Config) []models.Row {
	switch cfg.DatasetSource {
	case "postgres":
		conn, err := pgxpool.New(context.Background(), cfg.DBSource)
		if err != nil {
			log.Fatal().Err(err).Msg("cannot connect to db")
		}
		defer conn.Close()

		rows, err := dataset.NewPostgresSource(conn).FetchRows(context.Background())
		if err != nil {
			log.Fatal().Err(err).Msg("cannot fetch dataset from db")
		}
		return rows
	default:
		rows, err := dataset.LoadFile(cfg.DatasetPath, cfg.DatasetEncoding)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.DatasetPath).Msg("cannot load dataset file")
		}
		return rows
	}
}
