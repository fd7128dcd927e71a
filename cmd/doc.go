package cmd

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/emrgen/manuscript/internal/cache"
	"github.com/emrgen/manuscript/internal/compress"
	"github.com/emrgen/manuscript/internal/config"
	"github.com/emrgen/manuscript/internal/queue"
	"github.com/emrgen/manuscript/internal/schema"
	"github.com/emrgen/manuscript/internal/service"
	"github.com/emrgen/manuscript/internal/store"
)

var docCmd = &cobra.Command{
	Use:   "doc",
	Short: "document commands",
}

func init() {
	docCmd.AddCommand(getDocCmd())
	docCmd.AddCommand(migrateDocCmd())
}

func documentService(cnf *config.Config) (*service.DocumentService, *queue.Dispatcher, error) {
	registry, err := schema.NewRegistry(cnf.SchemaVersion)
	if err != nil {
		return nil, nil, err
	}

	var documentCache cache.DocumentCache
	if cnf.RedisAddr != "" {
		documentCache = cache.NewRedisDocumentCache(cache.Options{
			Addr:     cnf.RedisAddr,
			Password: cnf.RedisPassword,
			DB:       cnf.RedisDB,
		})
	}

	dispatcher := queue.NewDispatcher()
	svc := service.NewDocumentService(
		compress.FromName(cnf.Compression),
		store.NewGormStore(config.GetDb(cnf)),
		registry,
		documentCache,
		dispatcher,
	)

	return svc, dispatcher, nil
}

func getDocCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <document-id>",
		Short: "Print a document's content and version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			docID, err := uuid.Parse(args[0])
			if err != nil {
				return err
			}

			svc, dispatcher, err := documentService(config.LoadConfig())
			if err != nil {
				return err
			}
			defer dispatcher.Close()

			doc, err := svc.GetDocument(context.Background(), docID)
			if err != nil {
				return err
			}

			fmt.Printf("version: %d\nschema: %s\n%s\n", doc.Version, doc.SchemaVersion, doc.Content)
			return nil
		},
	}
}

func migrateDocCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate <document-id>",
		Short: "Bring a document up to the supported schema version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			docID, err := uuid.Parse(args[0])
			if err != nil {
				return err
			}

			svc, dispatcher, err := documentService(config.LoadConfig())
			if err != nil {
				return err
			}
			defer dispatcher.Close()

			doc, err := svc.EnsureCurrentSchema(context.Background(), docID)
			if err != nil {
				return err
			}

			fmt.Printf("document %s is at schema %s\n", doc.ID, doc.SchemaVersion)
			return nil
		},
	}
}
