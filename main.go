package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/pbhargavreddy-5/Infection-risk-prediction-v2/advisory"
	"github.com/pbhargavreddy-5/Infection-risk-prediction-v2/config"
	"github.com/pbhargavreddy-5/Infection-risk-prediction-v2/cronjobs"
	"github.com/pbhargavreddy-5/Infection-risk-prediction-v2/db"
	"github.com/pbhargavreddy-5/Infection-risk-prediction-v2/mailer"
	"github.com/pbhargavreddy-5/Infection-risk-prediction-v2/pipeline"
	"github.com/pbhargavreddy-5/Infection-risk-prediction-v2/riskmodel"
	"github.com/pbhargavreddy-5/Infection-risk-prediction-v2/routes"
	"github.com/pbhargavreddy-5/Infection-risk-prediction-v2/thingspeak"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from the environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Load the pretrained stages and the tier table
	model, err := riskmodel.Load(cfg.ModelDir)
	if err != nil {
		log.Fatalf("Failed to load model artifacts: %v", err)
	}
	tiers, err := riskmodel.LoadTiers(cfg.ModelDir)
	if err != nil {
		log.Fatalf("Failed to load tier table: %v", err)
	}
	log.Printf("Model loaded from %s (%d risk tiers)", cfg.ModelDir, len(tiers))

	tsClient := thingspeak.NewClient(cfg)

	runner := &pipeline.Runner{
		Fetcher: tsClient,
		Model:   model,
		Tiers:   tiers,
		Policy:  cfg.Policy,
	}

	if cfg.WritebackEnabled() {
		runner.Updater = tsClient
	} else {
		log.Println("PREDICTION_WRITE_API_KEY not set, channel writeback disabled")
	}

	if cfg.MailEnabled() {
		runner.Mailer = mailer.New(cfg.SMTPServer, cfg.SMTPPort, cfg.EmailSender, cfg.EmailPassword, cfg.EmailReceiver)
	} else {
		log.Println("Email credentials not set, alert email disabled")
	}

	if cfg.OpenAIKey != "" {
		log.Println("OPENAI_API_KEY loaded, advisories enabled")
		runner.Advisor = advisory.NewGenerator(cfg.OpenAIKey)
	}

	// Init firestore
	var store *db.RunStore
	if cfg.FirebaseCredentials != "" {
		firestoreClient := db.InitFirestore(cfg.FirebaseCredentials)
		defer db.CloseFirestore() // Firestore client is closed on exit
		store = db.NewRunStore(firestoreClient)
		runner.Store = store
	} else {
		log.Println("FIREBASE_CREDENTIALS not set, run history disabled")
	}

	// Initialize cron jobs
	cronjobs.InitCronJobs(runner, cfg.RunSchedule)

	r := routes.SetupRouter(runner, store, cfg)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
