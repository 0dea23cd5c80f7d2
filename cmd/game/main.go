package main

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/duncanmcewan/marchlands/internal/common"
	"github.com/duncanmcewan/marchlands/internal/config"
	"github.com/duncanmcewan/marchlands/internal/game"
	"github.com/duncanmcewan/marchlands/internal/game/catalog"
	"github.com/duncanmcewan/marchlands/internal/game/events"
	"github.com/duncanmcewan/marchlands/internal/game/events/subscribers"
	"github.com/duncanmcewan/marchlands/internal/game/resource"
	"github.com/duncanmcewan/marchlands/internal/mapdata"
)

func main() {
	if err := config.Init(""); err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	cfg := config.Get()
	setupLogging(cfg)
	config.WatchConfig(func() { setupLogging(config.Get()) })

	data, err := mapdata.Load(cfg.Engine.MapPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Engine.MapPath).Msg("Loading map")
	}

	bus := events.NewEventBus()
	if cfg.Client.ShowEventLog {
		sub := subscribers.NewLoggerSubscriber("console", log.Logger, zerolog.InfoLevel)
		// Per-command events are noise at the prompt; log the milestones.
		sub.SetEventFilter([]string{
			events.TypeGameStarted, events.TypeTurnResolved, events.TypeCountyCaptured,
		})
		bus.Subscribe(sub)
	}

	initial := game.NewGameState(data)
	initial.FogOfWarEnabled = cfg.Engine.FogOfWar
	eng := game.NewEngine(initial, data, cfg.StartingStockpile(), bus, log.Logger)

	fmt.Println("Marchlands county strategy console")
	eng.Dispatch(game.OpenSetup{})
	printCharacters(eng.State())

	repl(eng)
}

func setupLogging(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if cfg.Logging.Format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func repl(eng *game.Engine) {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "quit" || fields[0] == "exit" {
			return
		}
		handle(eng, fields)
	}
}

func handle(eng *game.Engine, fields []string) {
	gs := eng.State()
	cmd, err := parseCommand(gs, fields)
	if err != nil {
		fmt.Println(err)
		return
	}
	if cmd == nil {
		return // informational command, already printed
	}
	if !eng.Dispatch(cmd) {
		fmt.Println("nothing happened: command rejected")
		return
	}
	afterDispatch(eng, cmd)
}

func parseCommand(gs game.GameState, fields []string) (game.Command, error) {
	switch fields[0] {
	case "help":
		printHelp()
		return nil, nil
	case "counties":
		printCounties(gs)
		return nil, nil
	case "status":
		printStatus(gs)
		return nil, nil
	case "report":
		printReport(gs)
		return nil, nil
	case "start":
		if len(fields) != 2 {
			return nil, fmt.Errorf("usage: start <character-id>")
		}
		return game.BeginGame{CharacterID: strings.ToUpper(fields[1])}, nil
	case "select":
		if len(fields) != 2 {
			return nil, fmt.Errorf("usage: select <county-id>")
		}
		return game.SelectCounty{CountyID: strings.ToUpper(fields[1])}, nil
	case "build":
		if len(fields) != 2 {
			return nil, fmt.Errorf("usage: build <track>")
		}
		track, err := catalog.ParseTrack(fields[1])
		if err != nil {
			return nil, err
		}
		if track.IsWarehouse() {
			return game.QueueWarehouseUpgrade{}, nil
		}
		if gs.SelectedCountyID == "" {
			return nil, fmt.Errorf("select a county first")
		}
		return game.QueueUpgrade{CountyID: gs.SelectedCountyID, Track: track}, nil
	case "claim":
		if len(fields) != 3 {
			return nil, fmt.Errorf("usage: claim <source> <target>")
		}
		return game.QueueClaim{
			SourceCountyID: strings.ToUpper(fields[1]),
			TargetCountyID: strings.ToUpper(fields[2]),
		}, nil
	case "conquer":
		if len(fields) != 3 {
			return nil, fmt.Errorf("usage: conquer <source> <target>")
		}
		return game.QueueConquer{
			SourceCountyID: strings.ToUpper(fields[1]),
			TargetCountyID: strings.ToUpper(fields[2]),
		}, nil
	case "cancel":
		if len(fields) != 3 {
			return nil, fmt.Errorf("usage: cancel <county|-> <order-id>")
		}
		countyID := strings.ToUpper(fields[1])
		if countyID == "-" {
			countyID = ""
		}
		return game.CancelOrder{CountyID: countyID, OrderID: fields[2]}, nil
	case "fog":
		return game.ToggleFogOfWar{}, nil
	case "end":
		return game.EndTurn{}, nil
	case "ok":
		return game.CloseTurnReport{}, nil
	default:
		return nil, fmt.Errorf("unknown command %q, try help", fields[0])
	}
}

func afterDispatch(eng *game.Engine, cmd game.Command) {
	gs := eng.State()
	switch cmd.(type) {
	case game.EndTurn:
		printReport(gs)
	case game.BeginGame:
		fmt.Printf("Playing as %s, %d counties under your banner\n",
			gs.PlayerFactionID, len(gs.OwnedCountyIDs))
		printStatus(gs)
	}
}

func printHelp() {
	fmt.Println(`commands:
  counties                 list visible counties
  status                   treasury and selection
  select <county>          change selection
  build <track>            queue an upgrade in the selected county
  claim <source> <target>  settle a neutral county
  conquer <source> <target>  take an enemy county
  cancel <county|-> <id>   cancel an order (use - for the warehouse queue)
  fog                      toggle fog of war
  end                      resolve the turn
  ok                       close the turn report
  report                   reprint the last report
  quit`)
}

func printCharacters(gs game.GameState) {
	fmt.Println("choose a character with: start <id>")
	for _, ch := range gs.Characters {
		fmt.Printf("  %-10s %s\n", ch.ID, ch.Name)
	}
}

func printCounties(gs game.GameState) {
	ids := make([]string, 0, len(gs.Counties))
	for id := range gs.Counties {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if gs.FogOfWarEnabled && !gs.Discovered(id) {
			continue
		}
		c := gs.Counties[id]
		color := common.NeutralColor
		if k, ok := gs.Kingdoms[c.OwnerID]; ok {
			color = common.ParseHexColor(k.Color)
		}
		marker := " "
		if id == gs.SelectedCountyID {
			marker = "*"
		}
		fmt.Printf("%s %s%-10s%s %-14s owner=%-8s pop=%-4d roads=%-2d def=%d\n",
			marker, common.AnsiForeground(color), id, common.AnsiReset,
			c.Name, c.OwnerID, c.Population, c.RoadLevel, c.Defense())
	}
}

func printStatus(gs game.GameState) {
	stock := gs.PlayerStockpile()
	if stock == nil {
		fmt.Println("no game in progress")
		return
	}
	fmt.Printf("turn %d, warehouse level %d (cap %d each)\n",
		gs.TurnNumber, gs.WarehouseLevel, resource.StorageCap(gs.WarehouseLevel))
	for _, k := range resource.Kinds {
		fmt.Printf("  %-11s %d\n", strings.ToLower(string(k)), stock.Get(k))
	}
	if gs.SelectedCountyID != "" {
		fmt.Println("selected:", gs.SelectedCountyID)
	}
}

func printReport(gs game.GameState) {
	r := gs.LastTurnReport
	if r == nil {
		fmt.Println("no turn resolved yet")
		return
	}
	fmt.Printf("turn %d: net %s\n", r.TurnNumber, r.Deltas.Format())
	for _, line := range r.Lines {
		fmt.Println("  ", line)
	}
}
