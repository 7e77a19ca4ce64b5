package utils

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"

	"github.com/khanhtran-03/shopsphere/models"
)

// EmailConfig holds SMTP configuration
type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func emailConfigFromEnv() EmailConfig {
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil || port == 0 {
		port = 587
	}
	return EmailConfig{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     port,
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     os.Getenv("SMTP_FROM"),
	}
}

// SendOrderPaidEmail sends an order confirmation once payment has been detected
func SendOrderPaidEmail(to string, order *models.Order) error {
	config := emailConfigFromEnv()

	m := gomail.NewMessage()
	m.SetHeader("From", config.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Your ShopSphere order is confirmed")

	body := fmt.Sprintf(`
		<h2>Payment received!</h2>
		<p>We have received your bank transfer for order <strong>%s</strong>.</p>
		<p>Amount: <strong>%.0f</strong></p>
		<p>Your order is now being prepared. You can follow its progress from your order history.</p>
		<p>Thank you for shopping with ShopSphere!</p>
	`, order.ID, order.Total)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}

	return nil
}
