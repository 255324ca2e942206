package main

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/yourorg/turnero/internal/config"
	appdb "github.com/yourorg/turnero/internal/db"
	"github.com/yourorg/turnero/internal/models"
	"github.com/yourorg/turnero/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Println("==== Turnero CLI ====")
		fmt.Println("1) Health check API")
		fmt.Println("2) Apply schema (create table + migrate)")
		fmt.Println("3) List personas")
		fmt.Println("4) Seed database (create demo persona)")
		fmt.Println("5) Exit")
		fmt.Print("Select option: ")
		choice, _ := reader.ReadString('\n')
		choice = strings.TrimSpace(choice)
		switch choice {
		case "1":
			doHealthCheck()
		case "2":
			withDB(cfg, doSchema)
		case "3":
			withDB(cfg, doList)
		case "4":
			withDB(cfg, doSeed)
		case "5":
			fmt.Println("Bye")
			return
		default:
			fmt.Println("Invalid option")
		}
		fmt.Println()
	}
}

func doHealthCheck() {
	base := os.Getenv("BASE_URL")
	if base == "" {
		base = "http://127.0.0.1:5000"
	}
	url := strings.TrimRight(base, "/") + "/health"
	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		fmt.Println("Health: ERROR:", err)
		return
	}
	defer resp.Body.Close()
	fmt.Println("Health status:", resp.Status)
}

func withDB(cfg config.Config, fn func(ctx context.Context, db *sql.DB)) {
	db, err := appdb.Connect(cfg)
	if err != nil {
		log.Println("DB connect error:", err)
		return
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	fn(ctx, db)
}

func doSchema(ctx context.Context, db *sql.DB) {
	if err := appdb.EnsureSchema(ctx, db); err != nil {
		log.Println("Ensure schema error:", err)
		return
	}
	applied, err := appdb.Migrate(ctx, db)
	if err != nil {
		log.Println("Migrate error:", err)
		return
	}
	if len(applied) == 0 {
		fmt.Println("Schema: already up to date")
		return
	}
	fmt.Printf("Schema: added columns %s\n", strings.Join(applied, ", "))
}

func doList(ctx context.Context, db *sql.DB) {
	personas, err := store.NewMySQL(db).List(ctx)
	if err != nil {
		log.Println("List error:", err)
		return
	}
	if len(personas) == 0 {
		fmt.Println("No hay personas registradas")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDNI\tNOMBRE\tAPELLIDO\tENTRADA\tMUTUAL\tATENCION\tTERMINADO")
	for _, p := range personas {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%d\n",
			p.ID, p.DNI, p.Nombre, p.Apellido, p.HoraEntrada,
			orDash(p.Mutual), orDash(p.Atencion), p.Terminado)
	}
	w.Flush()
}

func doSeed(ctx context.Context, db *sql.DB) {
	if err := appdb.EnsureSchema(ctx, db); err != nil {
		log.Println("Ensure schema error:", err)
		return
	}
	mutual := "Particular"
	req := models.PersonaCreateRequest{
		DNI:      "00000000",
		Nombre:   "Demo",
		Apellido: "Turnero",
		Mutual:   &mutual,
	}
	p, err := store.NewMySQL(db).Create(ctx, models.NewPersona(req, time.Now()))
	if errors.Is(err, store.ErrDuplicateDNI) {
		fmt.Println("Seed: persona demo (dni 00000000) already exists")
		return
	}
	if err != nil {
		fmt.Println("Seed: insert error:", err)
		return
	}
	fmt.Printf("Seed: created persona demo with id %d\n", p.ID)
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}
