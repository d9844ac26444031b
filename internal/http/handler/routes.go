package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"docsummary/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay thin; business logic lives in the services.
func RegisterRoutes(app *fiber.App, db *sql.DB, docSvc service.DocumentService, sumSvc service.SummaryService) {
	// Serve OpenAPI spec and Swagger UI
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	})

	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	app.Get("/documents", ListDocuments(docSvc))
	app.Post("/documents", UploadDocument(docSvc))
	app.Get("/documents/:id", GetDocument(docSvc))
	app.Delete("/documents/:id", DeleteDocument(docSvc))
	app.Post("/documents/:id/extract", ExtractDocument(docSvc))

	app.Post("/summaries/generate", GenerateSummary(sumSvc))
	app.Get("/summaries/:id", GetSummary(sumSvc))
	app.Patch("/summaries/:id", UpdateSummary(sumSvc))
}
