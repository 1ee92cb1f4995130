package main

import (
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"

	"plaza-lens/pkg/config"
	"plaza-lens/pkg/parser"
	"plaza-lens/pkg/types"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

var cfg config.Config

func main() {
	flag.Parse()
	cfg = config.LoadConfig()
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	}

	// Create Gin router
	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()

	// Enable CORS for browser frontends
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		AllowCredentials: true,
	}))

	// Health check endpoint
	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	// Save container endpoints
	r.POST("/api/inspect", handleInspect)
	r.POST("/api/repair", handleRepair)

	// Serve frontend build (if exists)
	if _, err := os.Stat("web/build"); err == nil {
		r.Static("/static", "web/build/static")
		r.StaticFile("/", "web/build/index.html")
		r.NoRoute(func(c *gin.Context) {
			c.File("web/build/index.html")
		})
	} else {
		// Fallback: simple HTML page
		r.GET("/", func(c *gin.Context) {
			c.Data(200, "text/html", []byte(fallbackHTML))
		})
	}

	logrus.Infof("listening on http://127.0.0.1:%d", cfg.ServerPort)
	if err := r.Run(fmt.Sprintf(":%d", cfg.ServerPort)); err != nil {
		logrus.Fatalf("server exited: %v", err)
	}
}

func handleInspect(c *gin.Context) {
	data, ok := readSaveBody(c)
	if !ok {
		return
	}
	container, err := parser.Open(data)
	if err != nil {
		c.JSON(422, types.InspectOutput{
			OK:    false,
			Error: errorInfo(err),
		})
		return
	}
	c.JSON(200, parser.Inspect(container))
}

func handleRepair(c *gin.Context) {
	data, ok := readSaveBody(c)
	if !ok {
		return
	}
	container, err := parser.Open(data)
	if err != nil {
		c.JSON(422, types.RepairOutput{
			OK:    false,
			Error: errorInfo(err),
		})
		return
	}
	report, err := parser.Repair(container, nil)
	if err != nil {
		c.JSON(422, types.RepairOutput{
			OK:    false,
			Error: errorInfo(err),
		})
		return
	}
	c.Header("X-Digest-Repaired", strconv.FormatBool(report.DigestRepaired))
	c.Header("X-Blocks-Repaired", strconv.Itoa(report.RepairedCount))
	c.Data(200, "application/octet-stream", container.Bytes())
}

// readSaveBody reads the raw save bytes from the request, enforcing the
// configured upload limit.
func readSaveBody(c *gin.Context) ([]byte, bool) {
	body := http.MaxBytesReader(c.Writer, c.Request.Body, cfg.MaxUploadBytes)
	data, err := io.ReadAll(body)
	if err != nil {
		c.JSON(400, types.InspectOutput{
			OK:    false,
			Error: &types.ErrorInfo{Code: "INVALID_REQUEST", Message: "Failed to read request body"},
		})
		return nil, false
	}
	if len(data) == 0 {
		c.JSON(400, types.InspectOutput{
			OK:    false,
			Error: &types.ErrorInfo{Code: "INVALID_REQUEST", Message: "Empty request body"},
		})
		return nil, false
	}
	return data, true
}

// errorInfo maps a codec error onto its structured code.
func errorInfo(err error) *types.ErrorInfo {
	code := "PARSE_ERROR"
	switch {
	case types.IsUnrepairable(err):
		code = "UNREPAIRABLE"
	case types.IsValidation(err):
		code = "VALIDATION"
	case types.IsChecksumMismatch(err):
		code = "CHECKSUM_MISMATCH"
	case types.IsBadFormat(err):
		code = "BAD_FORMAT"
	}
	return &types.ErrorInfo{Code: code, Message: err.Error()}
}

const fallbackHTML = `<!DOCTYPE html>
<html>
<head>
    <title>Plaza Lens - Save Container Inspector</title>
    <style>
        body { font-family: Arial, sans-serif; max-width: 800px; margin: 50px auto; padding: 20px; }
        h1 { color: #e3350d; }
        button { background: #e3350d; color: white; padding: 10px 20px; border: none; cursor: pointer; margin-right: 10px; }
        pre { background: #f5f5f5; padding: 15px; overflow-x: auto; }
    </style>
</head>
<body>
    <h1>&#128230; Plaza Lens</h1>
    <p>Choose a save container file:</p>
    <input type="file" id="input">
    <br><br>
    <button onclick="inspect()">Inspect</button>
    <button onclick="repair()">Repair</button>
    <h2>Result:</h2>
    <pre id="output">Results will appear here...</pre>

    <script>
        async function readFileBytes() {
            const files = document.getElementById('input').files;
            if (!files.length) throw new Error('pick a file first');
            return await files[0].arrayBuffer();
        }

        async function inspect() {
            const output = document.getElementById('output');
            try {
                const body = await readFileBytes();
                const response = await fetch('/api/inspect', {
                    method: 'POST',
                    headers: {'Content-Type': 'application/octet-stream'},
                    body: body
                });
                const result = await response.json();
                output.textContent = JSON.stringify(result, null, 2);
            } catch (err) {
                output.textContent = 'Error: ' + err.message;
            }
        }

        async function repair() {
            const output = document.getElementById('output');
            try {
                const body = await readFileBytes();
                const response = await fetch('/api/repair', {
                    method: 'POST',
                    headers: {'Content-Type': 'application/octet-stream'},
                    body: body
                });
                if (!response.ok) {
                    const result = await response.json();
                    output.textContent = JSON.stringify(result, null, 2);
                    return;
                }
                const blob = await response.blob();
                const a = document.createElement('a');
                a.href = URL.createObjectURL(blob);
                a.download = 'repaired.bin';
                a.click();
                output.textContent = 'Repaired file downloaded (blocks re-protected: '
                    + response.headers.get('X-Blocks-Repaired') + ')';
            } catch (err) {
                output.textContent = 'Error: ' + err.message;
            }
        }
    </script>
</body>
</html>`
