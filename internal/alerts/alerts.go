// Package alerts emails low-stock warnings and keeps a Redis-backed log of
// them for a daily summary.
package alerts

import (
	"context"
	"encoding/json"
	"fmt"
	"net/smtp"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var (
	alertFrom        = os.Getenv("ALERT_FROM")  // sender email
	alertTo          = os.Getenv("ALERT_TO")    // receiver email
	smtpServer       = os.Getenv("SMTP_SERVER") // smtp.example.com
	smtpPort         = os.Getenv("SMTP_PORT")   // e.g., 587
	smtpUser         = os.Getenv("SMTP_USER")
	smtpPassword     = os.Getenv("SMTP_PASS")
	smtpAuthDisabled = os.Getenv("SMTP_AUTH_DISABLED")

	rdb *redis.Client
	ctx context.Context
)

func SetRedisClient(client *redis.Client, c context.Context) {
	rdb = client
	ctx = c
}

type LowStockEntry struct {
	Product   string    `json:"product"`
	Stock     int       `json:"stock"`
	Threshold int       `json:"threshold"`
	Time      time.Time `json:"time"`
}

const DailyLowStockLogKey = "warehouse:lowstock:daily"

// SendLowStockAlert fires an email for a product whose stock dropped below
// the configured threshold and records the event for the daily summary.
func SendLowStockAlert(product string, stock, threshold int) {
	logLowStockEvent(product, stock, threshold)

	if smtpServer == "" {
		return
	}

	subject := fmt.Sprintf("⚠️ LOW STOCK: %s", product)
	body := fmt.Sprintf("Product: %s\nStock: %d\nThreshold: %d\nTime: %s",
		product, stock, threshold, time.Now().Format(time.RFC3339))

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s", alertFrom, alertTo, subject, body)

	addr := fmt.Sprintf("%s:%s", smtpServer, smtpPort)
	auth := smtp.PlainAuth("", smtpUser, smtpPassword, smtpServer)

	if smtpAuthDisabled != "" {
		auth = nil
	}

	go func() {
		if err := smtp.SendMail(addr, auth, alertFrom, []string{alertTo}, []byte(msg)); err != nil {
			zap.L().Error("failed to send low-stock alert email", zap.Error(err))
		}
	}()
}

func logLowStockEvent(product string, stock, threshold int) {
	if rdb == nil {
		return
	}
	entry := LowStockEntry{
		Product:   product,
		Stock:     stock,
		Threshold: threshold,
		Time:      time.Now(),
	}
	data, _ := json.Marshal(entry)
	_ = rdb.RPush(ctx, DailyLowStockLogKey, data).Err()
}

func StartDailyLowStockSummary(interval time.Duration) {
	for {
		now := time.Now()
		next := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 0, 0, now.Location())
		if now.After(next) {
			next = next.Add(interval)
		}
		time.Sleep(time.Until(next))
		SendDailyLowStockSummary()
	}
}

func SendDailyLowStockSummary() {
	if rdb == nil {
		return
	}
	entries, err := rdb.LRange(ctx, DailyLowStockLogKey, 0, -1).Result()
	if err != nil || len(entries) == 0 {
		return
	}
	_ = rdb.Del(ctx, DailyLowStockLogKey).Err() // clear after reading

	var logs []LowStockEntry
	productCounts := make(map[string]int)

	for _, item := range entries {
		var entry LowStockEntry
		if err := json.Unmarshal([]byte(item), &entry); err == nil {
			logs = append(logs, entry)
			productCounts[entry.Product]++
		}
	}

	var sb strings.Builder
	sb.WriteString("<h2>📊 Daily Low-Stock Summary</h2>")
	sb.WriteString(fmt.Sprintf("<p>Total alerts: <strong>%d</strong></p>", len(logs)))

	sb.WriteString("<h3>📦 By Product</h3><ul>")
	for product, count := range productCounts {
		sb.WriteString(fmt.Sprintf("<li><code>%s</code>: %d</li>", product, count))
	}
	sb.WriteString("</ul>")

	sb.WriteString("<h3>📋 Full Log</h3><ul>")
	for _, entry := range logs {
		sb.WriteString(fmt.Sprintf("<li><b>%s</b> at stock %d (threshold %d) at %s</li>",
			entry.Product, entry.Stock, entry.Threshold, entry.Time.Format(time.RFC822)))
	}
	sb.WriteString("</ul>")
	subject := "📊 Daily Low-Stock Report"

	msg := strings.Join([]string{
		"From: " + alertFrom,
		"To: " + alertTo,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=\"UTF-8\"",
		"",
		sb.String(),
	}, "\r\n")

	if smtpServer == "" {
		return
	}

	addr := fmt.Sprintf("%s:%s", smtpServer, smtpPort)
	auth := smtp.PlainAuth("", smtpUser, smtpPassword, smtpServer)

	if smtpAuthDisabled != "" {
		auth = nil
	}

	go func() {
		if err := smtp.SendMail(addr, auth, alertFrom, []string{alertTo}, []byte(msg)); err != nil {
			zap.L().Error("failed to send daily low-stock summary", zap.Error(err))
		}
	}()
}
