// Cucina is a personal recipe organizer with a unit-aware pantry.
//
// Usage:
//
//	cucina [flags] <command> [args]
//
// Commands:
//
//	recipes                      list your recipes
//	search <query>               search recipes by name/description
//	show <recipe-id>             show one recipe
//	check <recipe-id>            ingredient sufficiency for the active session
//	cook <recipe-id>             start or resume an interactive cooking session
//	pantry                       list your inventory lots
//	stock <ingredient> <qty> <unit>  add stock to the pantry
//	ingredients [query]          list/search the ingredient catalog
//	add-ingredient <name>        add a custom ingredient
//	units                        list measurement units
//	register <username>          create a user and switch to it
//	login <username>             switch user
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/nappingtoad/Cucina/internal/catalog"
	"github.com/nappingtoad/Cucina/internal/display"
	"github.com/nappingtoad/Cucina/internal/domain"
	"github.com/nappingtoad/Cucina/internal/engine"
	"github.com/nappingtoad/Cucina/internal/logger"
	"github.com/nappingtoad/Cucina/internal/storage"
)

func main() {
	_ = godotenv.Load()

	defaultData := os.Getenv("CUCINA_DB")
	if defaultData == "" {
		defaultData = ".cucina/cucina.db"
	}

	dataPath := flag.String("data", defaultData, "path to the sqlite data file")
	memOnly := flag.Bool("mem", false, "run on an in-memory catalog (nothing is persisted)")
	verbose := flag.Bool("verbose", false, "enable verbose/debug logging")
	quiet := flag.Bool("quiet", false, "disable all logging")
	logFile := flag.String("log-file", "", "file to write logs to (default stderr)")
	flag.Parse()

	logLevel := logger.ParseLevel(os.Getenv("CUCINA_LOG"))
	if *verbose {
		logLevel = logger.LevelVerbose
	}
	if *quiet {
		logLevel = logger.LevelOff
	}

	var logOut io.Writer = os.Stderr
	if *logFile != "" {
		if dir := filepath.Dir(*logFile); dir != "" && dir != "." {
			os.MkdirAll(dir, 0o755)
		}
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v\n", *logFile, err)
		} else {
			logOut = f
			defer f.Close()
		}
	}
	stdlog.SetOutput(logOut)
	log := logger.New(logLevel, logOut)

	ctx := context.Background()

	var store domain.CatalogStore
	if *memOnly {
		store = storage.NewMemoryStore(log)
	} else {
		if dir := filepath.Dir(*dataPath); dir != "" && dir != "." {
			os.MkdirAll(dir, 0o755)
		}
		s, err := storage.OpenSQLite(*dataPath, log)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: opening data file: %v\n", err)
			os.Exit(1)
		}
		defer s.Close()
		store = s
	}

	svc := catalog.New(store, log)
	eng := engine.New(store, log)

	if err := run(ctx, flag.Args(), store, svc, eng); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, store domain.CatalogStore, svc *catalog.Service, eng *engine.Engine) error {
	if len(args) == 0 {
		fmt.Println(display.Banner())
		flag.Usage()
		return nil
	}
	cmd, rest := args[0], args[1:]

	switch cmd {
	case "register":
		if len(rest) != 1 {
			return errors.New("usage: register <username>")
		}
		user, err := svc.Register(ctx, rest[0])
		if err != nil {
			return err
		}
		fmt.Printf("welcome, %s\n", user.Username)
		return nil

	case "login":
		if len(rest) != 1 {
			return errors.New("usage: login <username>")
		}
		user, err := svc.Login(ctx, rest[0])
		if err != nil {
			return err
		}
		fmt.Printf("switched to %s\n", user.Username)
		return nil
	}

	// Everything below acts on behalf of the current user.
	user, err := svc.CurrentUser(ctx)
	if err != nil {
		return fmt.Errorf("no current user, run `cucina register <username>` first: %w", err)
	}

	switch cmd {
	case "recipes", "list":
		recipes, err := svc.ListRecipes(ctx, user.ID)
		if err != nil {
			return err
		}
		fmt.Println(display.RecipeList(recipes))

	case "search":
		if len(rest) != 1 {
			return errors.New("usage: search <query>")
		}
		recipes, err := svc.SearchRecipes(ctx, user.ID, rest[0])
		if err != nil {
			return err
		}
		fmt.Println(display.RecipeList(recipes))

	case "show":
		if len(rest) != 1 {
			return errors.New("usage: show <recipe-id>")
		}
		recipe, err := svc.GetRecipe(ctx, rest[0])
		if err != nil {
			return err
		}
		data, err := store.Load(ctx)
		if err != nil {
			return err
		}
		fmt.Println(display.Recipe(recipe, data))

	case "pantry":
		lots, err := svc.UserInventory(ctx, user.ID)
		if err != nil {
			return err
		}
		data, err := store.Load(ctx)
		if err != nil {
			return err
		}
		fmt.Println(display.Pantry(lots, data))

	case "stock":
		if len(rest) != 3 {
			return errors.New("usage: stock <ingredient-id> <quantity> <unit-id>")
		}
		qty, err := strconv.ParseFloat(rest[1], 64)
		if err != nil {
			return fmt.Errorf("quantity %q is not a number", rest[1])
		}
		if err := svc.StockInventory(ctx, user.ID, rest[0], rest[2], qty); err != nil {
			return err
		}
		fmt.Println("stocked")

	case "unstock":
		if len(rest) != 2 {
			return errors.New("usage: unstock <ingredient-id> <unit-id>")
		}
		if err := svc.RemoveInventory(ctx, user.ID, rest[0], rest[1]); err != nil {
			return err
		}
		fmt.Println("lot removed")

	case "ingredients":
		query := ""
		if len(rest) > 0 {
			query = rest[0]
		}
		found, err := svc.SearchIngredients(ctx, query)
		if err != nil {
			return err
		}
		for _, ing := range found {
			fmt.Printf("%-20s %s\n", ing.ID, ing.Name)
		}

	case "add-ingredient":
		if len(rest) != 1 {
			return errors.New("usage: add-ingredient <name>")
		}
		ing, err := svc.AddIngredient(ctx, rest[0])
		if err != nil {
			return err
		}
		fmt.Printf("added %s (%s)\n", ing.Name, ing.ID)

	case "units":
		units, err := svc.Measurements(ctx)
		if err != nil {
			return err
		}
		for _, m := range units {
			fmt.Printf("%-14s %s (%d conversions)\n", m.ID, m.Name, len(m.Conversions))
		}

	case "check":
		if len(rest) != 1 {
			return errors.New("usage: check <recipe-id>")
		}
		if _, err := eng.StartCooking(ctx, rest[0], user.ID); err != nil {
			return err
		}
		report, err := eng.CheckIngredients(ctx, rest[0], user.ID)
		if err != nil {
			return err
		}
		fmt.Println(display.Sufficiency(report))

	case "cook":
		if len(rest) != 1 {
			return errors.New("usage: cook <recipe-id>")
		}
		return cook(ctx, rest[0], user.ID, store, eng)

	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
	return nil
}

// cook starts or resumes the session and hands it to the interactive
// checklist.
func cook(ctx context.Context, recipeID, userID string, store domain.CatalogStore, eng *engine.Engine) error {
	session, err := eng.StartCooking(ctx, recipeID, userID)
	if err != nil {
		return err
	}
	report, err := eng.CheckIngredients(ctx, recipeID, userID)
	if err != nil {
		return err
	}
	data, err := store.Load(ctx)
	if err != nil {
		return err
	}
	recipe := data.RecipeByID(recipeID)
	if recipe == nil {
		return fmt.Errorf("recipe %s: %w", recipeID, domain.ErrNotFound)
	}

	model := display.NewCook(ctx, eng, data, recipe, session, report)
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return fmt.Errorf("running checklist: %w", err)
	}

	result, ok := final.(display.CookModel)
	if !ok {
		return nil
	}
	if result.Err != nil {
		return result.Err
	}
	switch result.Result {
	case display.ResultCompleted:
		fresh, err := store.Load(ctx)
		if err != nil {
			return err
		}
		fmt.Println(display.Ledger(result.Ledger, fresh))
	case display.ResultCancelled:
		fmt.Println("session cancelled, pantry untouched")
	default:
		fmt.Println("session left active, `cucina cook " + recipeID + "` to resume")
	}
	return nil
}

func init() {
	flag.Usage = func() {
		out := flag.CommandLine.Output()
		fmt.Fprintf(out, "usage: cucina [flags] <command> [args]\n\ncommands:\n")
		fmt.Fprint(out, strings.Join([]string{
			"  recipes                          list your recipes",
			"  search <query>                   search recipes",
			"  show <recipe-id>                 show one recipe",
			"  check <recipe-id>                ingredient sufficiency report",
			"  cook <recipe-id>                 interactive cooking session",
			"  pantry                           list inventory lots",
			"  stock <ingredient> <qty> <unit>  add pantry stock",
			"  unstock <ingredient> <unit>      drop one pantry lot",
			"  ingredients [query]              list/search ingredients",
			"  add-ingredient <name>            add a custom ingredient",
			"  units                            list measurement units",
			"  register <username>              create a user",
			"  login <username>                 switch user",
			"", "flags:", "",
		}, "\n"))
		flag.PrintDefaults()
	}
}
