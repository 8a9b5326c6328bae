package main

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/segmentio/kafka-go"
)

// Генератор нагрузки: создаёт заказ через HTTP и шлёт в Kafka колбэк Robokassa,
// иногда дважды или с поддельной подписью.

const (
	baseURL   = "http://localhost:8080"
	topic     = "payment-callbacks"
	packageID = "hehe-plus-7days-1gb"
	amount    = "9.99"
	currency  = "USD"
)

type createOrder struct {
	OrderID       string `json:"order_id"`
	PackageID     string `json:"package_id"`
	CustomerEmail string `json:"customer_email"`
	Amount        string `json:"amount"`
	Currency      string `json:"currency"`
	PaymentMethod string `json:"payment_method"`
}

type callbackMessage struct {
	Method  string `json:"method"`
	Payload string `json:"payload"`
}

func resultPayload(orderID, password2 string, forged bool) string {
	sig := md5.Sum([]byte(fmt.Sprintf("%s:%s:%s:Shp_order_id=%s", amount, orderID, password2, orderID)))
	signature := hex.EncodeToString(sig[:])
	if forged {
		signature = "deadbeef"
	}

	q := url.Values{}
	q.Set("OutSum", amount)
	q.Set("InvId", orderID)
	q.Set("SignatureValue", signature)
	q.Set("Shp_order_id", orderID)
	return q.Encode()
}

func createRandomOrder(ctx context.Context) (string, error) {
	orderID := strconv.Itoa(100000000 + rand.Intn(900000000))
	body, _ := json.Marshal(createOrder{
		OrderID:       orderID,
		PackageID:     packageID,
		CustomerEmail: fmt.Sprintf("user%d@example.com", rand.Intn(1000)),
		Amount:        amount,
		Currency:      currency,
		PaymentMethod: "robokassa",
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("create order %s: %s", orderID, resp.Status)
	}
	return orderID, nil
}

func main() {
	password2 := os.Getenv("ROBOKASSA_PASSWORD2")

	writer := &kafka.Writer{
		Addr:                   kafka.TCP("localhost:9092"),
		Topic:                  topic,
		AllowAutoTopicCreation: true,
	}
	defer writer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			orderID, err := createRandomOrder(ctx)
			if err != nil {
				log.Println("failed to create order:", err)
				continue
			}

			forged := rand.Intn(10) == 0
			deliveries := 1 + rand.Intn(3)
			data, _ := json.Marshal(callbackMessage{Method: "robokassa", Payload: resultPayload(orderID, password2, forged)})
			for i := 0; i < deliveries; i++ {
				if err := writer.WriteMessages(ctx, kafka.Message{Key: []byte(orderID), Value: data}); err != nil {
					log.Println("failed to write callback:", err)
				}
			}
			log.Println("callback sent", orderID, "deliveries:", deliveries, "forged:", forged)
		case <-ctx.Done():
			return
		}
	}
}
