// server/internal/api/handlers/message_handler.go
package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sort"
	"strings"
	"time"

	"surat-palm-api-server/internal/models"
	"surat-palm-api-server/internal/socket"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Delay before a factory's canned reply shows up in the thread.
const autoReplyDelay = 1500 * time.Millisecond

type MessageHandler struct {
	DB  *mongo.Database
	Hub *socket.Hub
}

type CreateMessageRequest struct {
	FactoryID  string `json:"factoryId" binding:"required"`
	Content    string `json:"content" binding:"required,min=1"`
	IsFromUser *bool  `json:"isFromUser" binding:"required"`
}

// GetMessages returns one factory's chat thread, oldest first.
func (h *MessageHandler) GetMessages(c *gin.Context) {
	factoryID := c.Param("factoryId")

	collection := h.DB.Collection("messages")
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})
	cursor, err := collection.Find(context.Background(), bson.M{"factoryID": factoryID}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query messages"})
		return
	}
	defer cursor.Close(context.Background())

	var messages []models.Message
	if err = cursor.All(context.Background(), &messages); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode messages"})
		return
	}
	if messages == nil {
		messages = []models.Message{}
	}

	c.JSON(http.StatusOK, messages)
}

// CreateMessage stores a chat message. A user message also schedules the
// factory's keyword auto-reply.
func (h *MessageHandler) CreateMessage(c *gin.Context) {
	var req CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message := models.Message{
		MessageID:  uuid.New().String(),
		FactoryID:  req.FactoryID,
		Content:    req.Content,
		IsFromUser: *req.IsFromUser,
		Timestamp:  time.Now(),
	}

	collection := h.DB.Collection("messages")
	if _, err := collection.InsertOne(context.Background(), message); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create message"})
		return
	}

	if message.IsFromUser {
		go h.sendAutoReply(req.FactoryID, req.Content)
	}

	c.JSON(http.StatusCreated, message)
}

// sendAutoReply stores the canned factory answer after a short delay and
// pushes it to connected WebSocket clients.
func (h *MessageHandler) sendAutoReply(factoryID, userMessage string) {
	time.Sleep(autoReplyDelay)

	reply := models.Message{
		MessageID:  uuid.New().String(),
		FactoryID:  factoryID,
		Content:    generateAutoReply(userMessage),
		IsFromUser: false,
		Timestamp:  time.Now(),
	}

	if _, err := h.DB.Collection("messages").InsertOne(context.Background(), reply); err != nil {
		log.Printf("Failed to store auto-reply for factory %s: %v", factoryID, err)
		return
	}

	payload, err := json.Marshal(gin.H{"type": "message", "data": reply})
	if err != nil {
		log.Printf("Failed to marshal auto-reply push: %v", err)
		return
	}
	h.Hub.Broadcast(payload)
}

// generateAutoReply picks a canned Thai answer by keyword: price, delivery
// appointment, opening hours, tonnage, or a generic greeting.
func generateAutoReply(userMessage string) string {
	lowerMessage := strings.ToLower(userMessage)

	if strings.Contains(lowerMessage, "ราคา") {
		return "ราคารับซื้อวันนี้อยู่ที่ประมาณ 6.80-7.20 บาท/กก. ขึ้นอยู่กับคุณภาพของปาล์ม ท่านสามารถนำมาขายได้เลยครับ"
	}
	if strings.Contains(lowerMessage, "นัดหมาย") || strings.Contains(lowerMessage, "ส่ง") {
		return "ยินดีรับนัดหมายครับ กรุณาแจ้งวันที่และเวลาที่ต้องการส่งปาล์ม พร้อมปริมาณโดยประมาณครับ"
	}
	if strings.Contains(lowerMessage, "เวลา") || strings.Contains(lowerMessage, "เปิด") {
		return "โรงงานเปิดทำการ 06:00 - 18:00 น. หยุดวันอาทิตย์ครับ"
	}
	if strings.Contains(lowerMessage, "ตัน") {
		return "รับทราบครับ สามารถนำมาส่งได้ตามเวลาทำการ หากมีปริมาณมากกว่า 10 ตัน กรุณาแจ้งล่วงหน้า 1 วันครับ"
	}

	return "ขอบคุณที่ติดต่อมาครับ เรายินดีให้บริการ กรุณาแจ้งรายละเอียดเพิ่มเติมเพื่อให้เราช่วยเหลือท่านได้ดียิ่งขึ้นครับ"
}

// GetConversations lists every factory thread with its last message and a
// rough unread counter for the inbox page.
func (h *MessageHandler) GetConversations(c *gin.Context) {
	msgCollection := h.DB.Collection("messages")
	cursor, err := msgCollection.Find(context.Background(), bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query messages"})
		return
	}
	defer cursor.Close(context.Background())

	var messages []models.Message
	if err = cursor.All(context.Background(), &messages); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode messages"})
		return
	}

	byFactory := make(map[string][]models.Message)
	for _, m := range messages {
		byFactory[m.FactoryID] = append(byFactory[m.FactoryID], m)
	}

	factoryCollection := h.DB.Collection("factories")
	conversations := make([]models.Conversation, 0, len(byFactory))
	for factoryID, msgs := range byFactory {
		var factory models.Factory
		if err := factoryCollection.FindOne(context.Background(), bson.M{"factoryID": factoryID}).Decode(&factory); err != nil {
			if err == mongo.ErrNoDocuments {
				continue
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve factory"})
			return
		}

		sort.Slice(msgs, func(i, j int) bool { return msgs[i].Timestamp.Before(msgs[j].Timestamp) })
		last := msgs[len(msgs)-1]

		unread := 0
		for _, m := range msgs {
			if !m.IsFromUser {
				unread++
			}
		}

		conversations = append(conversations, models.Conversation{
			Factory:     factory.Sanitized(),
			LastMessage: &last,
			UnreadCount: unread % 3,
		})
	}

	sort.Slice(conversations, func(i, j int) bool {
		return conversations[i].LastMessage.Timestamp.After(conversations[j].LastMessage.Timestamp)
	})

	c.JSON(http.StatusOK, conversations)
}
