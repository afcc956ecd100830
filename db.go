package main

import (
	"database/sql"
	"log"
	"time"

	_ "modernc.org/sqlite"
)

var db *sql.DB

// initDB opens the sqlite database and creates the schema. The database holds
// operator-facing data only: visitor metrics and the chat usage log. Chat
// transcripts themselves live in memory, per session.
func initDB(path string) {
	var err error
	db, err = sql.Open("sqlite", path)
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}

	createChatMessages := `
	CREATE TABLE IF NOT EXISTS chat_messages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		user_text TEXT NOT NULL,
		reply TEXT NOT NULL,
		source TEXT NOT NULL,  -- 'model' or 'fallback'
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
	)`

	if _, err := db.Exec(createChatMessages); err != nil {
		log.Fatal("Failed to create chat_messages table:", err)
	}

	log.Printf("Database ready at %s", path)
}

// sqliteUsageLog records chat exchanges for the admin dashboard.
type sqliteUsageLog struct{}

func (sqliteUsageLog) LogExchange(sessionID, userText, reply, source string) error {
	_, err := db.Exec(`
		INSERT INTO chat_messages (session_id, user_text, reply, source, timestamp)
		VALUES (?, ?, ?, ?, ?)
	`, sessionID, userText, reply, source, time.Now())
	return err
}
