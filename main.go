package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/smtp"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/gin-gonic/gin"

	"github.com/bmartins-dev/bruno-dev/internal/chat"
	"github.com/bmartins-dev/bruno-dev/internal/config"
	"github.com/bmartins-dev/bruno-dev/internal/gateway"
	"github.com/bmartins-dev/bruno-dev/internal/llm"
)

func main() {
	cfg := config.Load()

	initDB(cfg.DBPath)
	initAdminToken()
	initVisitorTracking()

	r := gin.Default()
	r.LoadHTMLGlob("templates/*")

	r.Static("/images", "./images")
	r.Static("/static", "./static")

	r.Use(visitorTrackingMiddleware())

	// Home page route
	r.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, "index.html", gin.H{
			"aboutMeContent":      AboutMe,
			"projectOneContent":   ProjectFinancialAssistant,
			"projectTwoContent":   ProjectRobotParis,
			"projectThreeContent": ProjectRouteOptimizer,
			"projectFourContent":  ProjectTaxAutomation,
		})
	})

	// HTMX Contact form endpoint - returns just the form HTML
	r.GET("/contact-form", func(c *gin.Context) {
		c.HTML(http.StatusOK, "contact.html", gin.H{
			"title": "Contact Me",
		})
	})

	// Skills content
	r.GET("/skills-content", func(c *gin.Context) {
		c.HTML(http.StatusOK, "skills-content.html", gin.H{
			"languages":  []string{"Python", "JavaScript/TypeScript", "HTML/CSS", "SQL"},
			"frameworks": []string{"React", "Next.js", "Node.js", "Flask", "Express", "Tailwind CSS"},
			"automation": []string{"Selenium", "PyAutoGUI", "Pandas"},
			"tools":      []string{"PostgreSQL", "MongoDB", "Docker", "Git", "AWS", "Azure"},
		})
	})

	// Handle contact form submission with HTMX
	r.POST("/contact", func(c *gin.Context) {
		name := c.PostForm("fullName")
		email := c.PostForm("email")
		message := c.PostForm("message")

		// Send email
		err := sendContactEmail(name, email, message)
		if err != nil {
			// Return error message HTML fragment
			c.HTML(http.StatusOK, "contact-error.html", gin.H{
				"error": "Sorry, there was an error sending your message. Please try again later.",
			})
			return
		}

		// Return success message HTML fragment
		c.HTML(http.StatusOK, "contact-success.html", gin.H{
			"success": "Thank you for your message! I'll get back to you soon.",
		})
	})

	// Server-side completion proxy: holds the API key so the widget never
	// ships it to the browser.
	gw := gateway.New(cfg.OpenAIAPIKey, cfg.OpenAIAPIBase, cfg.Timeout)
	gw.Register(r)

	// Chat assistant API used by the widget.
	setupChatRoutes(r, cfg)

	setupAdminRoutes(r)

	r.Run(":" + cfg.Port)
}

// newSender picks the completion transport once at startup. The conversation
// service only ever sees the interface.
func newSender(cfg config.Config) llm.Sender {
	if cfg.Transport == config.TransportRelay && cfg.RelayURL != "" {
		log.Printf("Chat transport: relay via %s", cfg.RelayURL)
		return llm.NewRelayTransport(cfg.RelayURL, cfg.Model, cfg.MaxTokens, cfg.Timeout)
	}
	if cfg.Transport == config.TransportRelay {
		log.Println("CHAT_TRANSPORT=relay but CHAT_RELAY_URL is empty, using direct transport")
	}
	log.Printf("Chat transport: direct to %s", cfg.OpenAIAPIBase)
	return llm.NewDirectTransport(cfg.OpenAIAPIKey, cfg.OpenAIAPIBase, cfg.Model, cfg.MaxTokens, cfg.Timeout)
}

type chatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type chatResponse struct {
	SessionID string `json:"session_id"`
	Reply     string `json:"reply"`
	Source    string `json:"source"`
}

func setupChatRoutes(r *gin.Engine, cfg config.Config) {
	sessions := chat.NewManager(chat.SystemPrompt, cfg.HistoryWindow)
	svc := chat.NewService(sessions, newSender(cfg), sqliteUsageLog{}, nil)

	r.POST("/api/chat", func(c *gin.Context) {
		var req chatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
			return
		}
		if req.Message == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
			return
		}

		reply, err := svc.Respond(c.Request.Context(), req.SessionID, req.Message)
		if err != nil {
			if errors.Is(err, chat.ErrSuperseded) {
				c.JSON(http.StatusConflict, gin.H{"error": "superseded by a newer message"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}

		c.JSON(http.StatusOK, chatResponse{
			SessionID: reply.SessionID,
			Reply:     reply.Text,
			Source:    reply.Source,
		})
	})

	r.POST("/api/chat/clear", func(c *gin.Context) {
		var req chatRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.SessionID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "session_id is required"})
			return
		}
		svc.Clear(req.SessionID)
		c.JSON(http.StatusOK, gin.H{"message": "conversation cleared"})
	})
}

func sendContactEmail(name, email, message string) error {
	// Email configuration - use environment variables for security
	smtpHost := os.Getenv("SMTP_HOST") // e.g., "smtp.gmail.com"
	smtpPort := os.Getenv("SMTP_PORT") // e.g., "587"
	smtpUser := os.Getenv("SMTP_USER") // your email
	smtpPass := os.Getenv("SMTP_PASS") // your app password
	toEmail := os.Getenv("TO_EMAIL")   // where you want to receive emails

	// Default values for development (remove in production)
	if smtpHost == "" {
		smtpHost = "smtp.gmail.com"
	}
	if smtpPort == "" {
		smtpPort = "587"
	}
	if toEmail == "" {
		toEmail = "bruno@bmartins.dev"
	}

	// Validate required fields
	if smtpUser == "" || smtpPass == "" {
		return fmt.Errorf("SMTP credentials not configured")
	}

	// Create message
	subject := fmt.Sprintf("Portfolio Contact: %s", name)
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Message:
%s

---
Sent from your portfolio contact form
`, name, email, message)

	// Compose email
	msg := []byte("To: " + toEmail + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"From: " + smtpUser + "\r\n" +
		"Reply-To: " + email + "\r\n" +
		"\r\n" +
		body + "\r\n")

	// SMTP authentication
	auth := smtp.PlainAuth("", smtpUser, smtpPass, smtpHost)

	// Send email
	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, smtpUser, []string{toEmail}, msg)
	if err != nil {
		fmt.Printf("Error sending email: %v\n", err)
		return err
	}

	fmt.Printf("Email sent successfully from %s (%s)\n", name, email)
	return nil
}
