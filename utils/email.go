package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strings"
)

type EmailConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

func GetEmailConfig() *EmailConfig {
	return &EmailConfig{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     os.Getenv("SMTP_PORT"),
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     os.Getenv("SMTP_FROM"),
	}
}

func SendEmail(to, subject, htmlBody string) error {
	config := GetEmailConfig()
	if config.Host == "" || config.Port == "" || config.From == "" {
		return fmt.Errorf("SMTP not configured")
	}

	headers := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n",
		config.From, to, subject)
	msg := []byte(headers + htmlBody)

	var auth smtp.Auth
	if config.Username != "" && config.Password != "" {
		auth = smtp.PlainAuth("", config.Username, config.Password, config.Host)
	}

	addr := config.Host + ":" + config.Port
	return smtp.SendMail(addr, auth, config.From, []string{to}, msg)
}

func SendWelcomeEmail(email, name string) {
	go func() {
		subject := "Welcome to Vastra!"
		body := fmt.Sprintf(`<h2>Welcome to Vastra, %s!</h2>
<p>Your account is ready. You can now:</p>
<ul>
<li>Browse the latest drops and collections</li>
<li>Save favourites to your wishlist</li>
<li>Track every order from placement to doorstep</li>
</ul>
<p>Happy shopping!</p>
<p>The Vastra Team</p>`, strings.Split(name, " ")[0])
		if err := SendEmail(email, subject, body); err != nil {
			log.Printf("Failed to send welcome email to %s: %v", email, err)
		}
	}()
}

func SendOTPEmail(email, code string) {
	go func() {
		subject := "Your Vastra verification code"
		body := fmt.Sprintf(`<h2>Verification code</h2>
<p>Your one-time code is:</p>
<h1>%s</h1>
<p>It expires in 5 minutes. If you did not request this, ignore this email.</p>`, code)
		if err := SendEmail(email, subject, body); err != nil {
			log.Printf("Failed to send OTP email to %s: %v", email, err)
		}
	}()
}

func SendOrderConfirmation(email, name, orderNumber, total string) {
	go func() {
		subject := fmt.Sprintf("Order %s confirmed", orderNumber)
		body := fmt.Sprintf(`<h2>Thanks for your order, %s!</h2>
<p>Order <strong>%s</strong> has been placed.</p>
<p>Total: <strong>%s</strong></p>
<p>We'll email you as it moves through fulfilment.</p>`, strings.Split(name, " ")[0], orderNumber, total)
		if err := SendEmail(email, subject, body); err != nil {
			log.Printf("Failed to send order confirmation to %s: %v", email, err)
		}
	}()
}

func SendOrderStatusUpdate(email, name, orderNumber, status string) {
	go func() {
		subject := fmt.Sprintf("Order %s update", orderNumber)
		body := fmt.Sprintf(`<h2>Hi %s,</h2>
<p>Your order <strong>%s</strong> is now: <strong>%s</strong></p>`,
			strings.Split(name, " ")[0], orderNumber, status)
		if err := SendEmail(email, subject, body); err != nil {
			log.Printf("Failed to send status update to %s: %v", email, err)
		}
	}()
}
