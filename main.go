package main

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"vfbridge/bridge"
	"vfbridge/server"
)

const DEFAULT_PORT = 8000

func main() {
	log.SetFlags(log.Ltime | log.Lshortfile)
	log.Println("Initializing...")

	err := godotenv.Load()
	if err != nil {
		log.Println("no .env file found, reading config from environment")
	}

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		log.Fatalln("Unable to get OpenAI API Key")
	}

	assistantID := os.Getenv("ASSISTANT_ID")
	if assistantID == "" {
		log.Fatalln("could not read assistant id")
	}

	port := DEFAULT_PORT
	if portEnv := os.Getenv("PORT"); portEnv != "" {
		port, err = strconv.Atoi(portEnv)
		if err != nil {
			log.Fatalln("invalid PORT value: ", portEnv)
		}
	}

	dbPath := os.Getenv("BRIDGE_DB")
	if dbPath == "" {
		dbPath = "bridge.db"
	}

	log.Println("Connecting to db")
	db, err := bridge.NewDB(dbPath)
	if err != nil {
		log.Fatalln("Unable to get database connection", err)
	}

	scheduler, err := bridge.NewScheduler()
	if err != nil {
		log.Fatalln("Unable to create scheduler", err)
	}

	client := bridge.NewAIClient(apiKey)
	b := bridge.NewBridge(client, db, scheduler, bridge.DefaultConfig(assistantID))
	b.StartJobs()

	srv := server.NewServer(b, port)
	log.Printf("Bridge is now running on port %d. Press CTRL-C to exit.\n", port)
	if err := srv.Start(); err != nil {
		log.Fatalln("server shut down with error: ", err)
	}
}
