// server/internal/database/seeder.go
package database

import (
	"context"
	"log"

	"surat-palm-api-server/internal/auth"
	"surat-palm-api-server/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// suratThaniFactories is the provincial mill directory the app ships with.
var suratThaniFactories = []models.Factory{
	{FactoryID: "f1", Name: "บริษัทท่าชนะน้ำมันปาล์มจำกัด", Latitude: 9.6048181, Longitude: 99.126462, PricePerKg: 6.85, QueueTons: 45, IsOpen: true, OpenTime: "06:00", CloseTime: "18:00", ClosedDays: []string{"sunday"}, Phone: "077-123-456", Address: "ต.ท่าชนะ อ.ท่าชนะ", District: "อ.ท่าชนะ"},
	{FactoryID: "f2", Name: "บริษัท กลุ่มสมอทอง จำกัด (มหาชน) สาขาท่าชนะ", Latitude: 9.509643, Longitude: 99.1313617, PricePerKg: 7.10, QueueTons: 28, IsOpen: true, OpenTime: "05:30", CloseTime: "19:00", ClosedDays: []string{"sunday"}, Phone: "077-234-567", Address: "ต.ท่าชนะ อ.ท่าชนะ", District: "อ.ท่าชนะ"},
	{FactoryID: "f3", Name: "นิวไบโอดีเซล", Latitude: 9.3208992, Longitude: 99.128207, PricePerKg: 6.95, QueueTons: 62, IsOpen: true, OpenTime: "06:00", CloseTime: "17:00", ClosedDays: []string{"sunday", "saturday"}, Phone: "077-345-678", Address: "ต.พุนพิน อ.พุนพิน", District: "อ.พุนพิน"},
	{FactoryID: "f4", Name: "บริษัท ธนาปาล์มโปรดักส์ จำกัด", Latitude: 9.2975957, Longitude: 99.1425639, PricePerKg: 7.25, QueueTons: 15, IsOpen: true, OpenTime: "05:00", CloseTime: "20:00", ClosedDays: []string{}, Phone: "077-456-789", Address: "ต.ท่าฉาง อ.ท่าฉาง", District: "อ.ท่าฉาง"},
	{FactoryID: "f5", Name: "บริษัท ท่าฉางรับเบอร์ จำกัด", Latitude: 9.2829377, Longitude: 99.1380361, PricePerKg: 6.75, QueueTons: 88, IsOpen: false, OpenTime: "06:00", CloseTime: "18:00", ClosedDays: []string{"sunday"}, Phone: "077-567-890", Address: "ต.ท่าฉาง อ.ท่าฉาง", District: "อ.ท่าฉาง"},
	{FactoryID: "f6", Name: "ทักษิณปาล์ม (2521)", Latitude: 9.1134306, Longitude: 99.2660693, PricePerKg: 6.90, QueueTons: 35, IsOpen: true, OpenTime: "06:00", CloseTime: "17:30", ClosedDays: []string{"sunday"}, Phone: "077-678-901", Address: "ต.มะขามเตี้ย อ.เมือง", District: "อ.เมืองสุราษฎร์ธานี"},
	{FactoryID: "f7", Name: "บริษัท แสงศิริอุตสาหกรรมเกษตร จำกัด", Latitude: 9.0840312, Longitude: 99.4295365, PricePerKg: 7.00, QueueTons: 52, IsOpen: true, OpenTime: "05:30", CloseTime: "18:30", ClosedDays: []string{"sunday"}, Phone: "077-789-012", Address: "ต.ดอนสัก อ.ดอนสัก", District: "อ.ดอนสัก"},
	{FactoryID: "f8", Name: "บริษัท วารีวัชรปาล์มออยล์ จำกัด", Latitude: 9.1168201, Longitude: 99.6452714, PricePerKg: 6.80, QueueTons: 40, IsOpen: true, OpenTime: "06:00", CloseTime: "17:00", ClosedDays: []string{"sunday", "saturday"}, Phone: "077-890-123", Address: "ต.กาญจนดิษฐ์ อ.กาญจนดิษฐ์", District: "อ.กาญจนดิษฐ์"},
	{FactoryID: "f9", Name: "พี.ซี.ปาล์ม (โรงงานสกัดน้ำมันปาล์ม) บ.พี.ซี.ปาล์ม(2550) จำกัด", Latitude: 9.2481596, Longitude: 99.6664416, PricePerKg: 7.15, QueueTons: 22, IsOpen: true, OpenTime: "05:00", CloseTime: "19:00", ClosedDays: []string{}, Phone: "077-901-234", Address: "ต.กาญจนดิษฐ์ อ.กาญจนดิษฐ์", District: "อ.กาญจนดิษฐ์"},
	{FactoryID: "f10", Name: "บริษัท ทักษิณอุตสาหกรรมน้ำมันปาล์ม (1993) จำกัด", Latitude: 8.9626999, Longitude: 99.2261209, PricePerKg: 6.88, QueueTons: 55, IsOpen: true, OpenTime: "06:00", CloseTime: "18:00", ClosedDays: []string{"sunday"}, Phone: "077-012-345", Address: "ต.ไชยา อ.ไชยา", District: "อ.ไชยา"},
	{FactoryID: "f11", Name: "บริษัท ไทยทาโลว์แอนด์ออยล์ จำกัด สาขาบางสวรรค์", Latitude: 8.6128481, Longitude: 99.0001336, PricePerKg: 6.92, QueueTons: 33, IsOpen: true, OpenTime: "06:00", CloseTime: "17:00", ClosedDays: []string{"sunday"}, Phone: "077-111-222", Address: "ต.บางสวรรค์ อ.พระแสง", District: "อ.พระแสง"},
	{FactoryID: "f12", Name: "บริษัท ยูนิปาล์มอินดัสทรี จำกัด", Latitude: 8.6218143, Longitude: 98.9905811, PricePerKg: 7.05, QueueTons: 48, IsOpen: false, OpenTime: "06:00", CloseTime: "18:00", ClosedDays: []string{"sunday"}, Phone: "077-222-333", Address: "ต.บางสวรรค์ อ.พระแสง", District: "อ.พระแสง"},
	{FactoryID: "f13", Name: "บริษัท บางสวรรค์น้ำมันปาล์ม จำกัด", Latitude: 8.6291778, Longitude: 98.9651056, PricePerKg: 6.78, QueueTons: 70, IsOpen: true, OpenTime: "05:30", CloseTime: "18:30", ClosedDays: []string{"sunday"}, Phone: "077-333-444", Address: "ต.บางสวรรค์ อ.พระแสง", District: "อ.พระแสง"},
	{FactoryID: "f14", Name: "บริษัท วารีวัชรปาล์มออยล์ 2 จำกัด", Latitude: 8.6061202, Longitude: 98.979654, PricePerKg: 7.20, QueueTons: 18, IsOpen: true, OpenTime: "05:00", CloseTime: "19:30", ClosedDays: []string{}, Phone: "077-444-555", Address: "ต.บางสวรรค์ อ.พระแสง", District: "อ.พระแสง"},
	{FactoryID: "f15", Name: "บริษัท กลุ่มสมอทอง จำกัด (มหาชน) สาขาที่ 1", Latitude: 8.676517, Longitude: 98.80145, PricePerKg: 6.82, QueueTons: 60, IsOpen: true, OpenTime: "06:00", CloseTime: "17:00", ClosedDays: []string{"sunday", "saturday"}, Phone: "077-555-666", Address: "ต.เวียงสระ อ.เวียงสระ", District: "อ.เวียงสระ"},
	{FactoryID: "f16", Name: "บริษัท ไทยทาโลว์แอนด์ออยล์ จำกัด", Latitude: 8.5333856, Longitude: 99.1039699, PricePerKg: 6.98, QueueTons: 42, IsOpen: true, OpenTime: "06:00", CloseTime: "18:00", ClosedDays: []string{"sunday"}, Phone: "077-666-777", Address: "ต.ชัยบุรี อ.ชัยบุรี", District: "อ.ชัยบุรี"},
	{FactoryID: "f17", Name: "บริษัท ป.พานิชรุ่งเรืองปาล์มออยล์ จำกัด", Latitude: 8.4337233, Longitude: 99.0722536, PricePerKg: 7.08, QueueTons: 25, IsOpen: true, OpenTime: "05:30", CloseTime: "19:00", ClosedDays: []string{"sunday"}, Phone: "077-777-888", Address: "ต.ชัยบุรี อ.ชัยบุรี", District: "อ.ชัยบุรี"},
	{FactoryID: "f18", Name: "บริษัท ปาล์มทองคำ จำกัด", Latitude: 8.5361459, Longitude: 99.2299094, PricePerKg: 6.72, QueueTons: 75, IsOpen: false, OpenTime: "06:00", CloseTime: "17:30", ClosedDays: []string{"sunday"}, Phone: "077-888-999", Address: "ต.ชัยบุรี อ.ชัยบุรี", District: "อ.ชัยบุรี"},
	{FactoryID: "f19", Name: "บริษัท เอส.พี.โอ.อะโกรอินดัสตรี้ส์ จำกัด", Latitude: 8.5190138, Longitude: 99.2263858, PricePerKg: 6.95, QueueTons: 38, IsOpen: true, OpenTime: "06:00", CloseTime: "18:00", ClosedDays: []string{"sunday"}, Phone: "077-999-000", Address: "ต.ชัยบุรี อ.ชัยบุรี", District: "อ.ชัยบุรี"},
	{FactoryID: "f20", Name: "บริษัทปาล์มน้ำมันธรรมชาติ จำกัด", Latitude: 8.392403, Longitude: 99.227794, PricePerKg: 7.12, QueueTons: 30, IsOpen: true, OpenTime: "05:00", CloseTime: "20:00", ClosedDays: []string{}, Phone: "077-000-111", Address: "ต.ชัยบุรี อ.ชัยบุรี", District: "อ.ชัยบุรี"},
}

// SeedFactories inserts the provincial directory when the collection is empty.
func SeedFactories(db *mongo.Database) error {
	collection := db.Collection("factories")

	count, err := collection.CountDocuments(context.Background(), bson.M{})
	if err != nil {
		return err
	}
	if count > 0 {
		log.Println("Factories already exist. Seeding skipped.")
		return nil
	}

	log.Println("Factory collection empty. Seeding Surat Thani directory...")
	docs := make([]interface{}, 0, len(suratThaniFactories))
	for _, f := range suratThaniFactories {
		docs = append(docs, f)
	}

	_, err = collection.InsertMany(context.Background(), docs)
	if err != nil {
		return err
	}

	log.Printf("Seeded %d factories.", len(docs))
	return nil
}

// SeedAdmin creates the default admin account if it does not exist yet.
func SeedAdmin(db *mongo.Database) error {
	userCollection := db.Collection("users")
	adminUsername := "admin"

	count, err := userCollection.CountDocuments(context.Background(), bson.M{"username": adminUsername})
	if err != nil {
		return err
	}

	if count > 0 {
		log.Println("Admin already exists. Seeding skipped.")
		return nil
	}

	log.Println("Admin not found. Seeding...")
	hashedPassword, err := auth.HashPassword("adminpassword")
	if err != nil {
		return err
	}

	admin := models.User{
		Username: adminUsername,
		Password: hashedPassword,
		Role:     "admin",
	}

	_, err = userCollection.InsertOne(context.Background(), admin)
	if err != nil {
		return err
	}

	log.Println("Admin seeded successfully.")
	return nil
}
