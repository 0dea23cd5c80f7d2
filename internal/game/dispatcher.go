package game

import (
	"github.com/rs/zerolog"

	"github.com/duncanmcewan/marchlands/internal/game/catalog"
	"github.com/duncanmcewan/marchlands/internal/game/county"
	"github.com/duncanmcewan/marchlands/internal/game/economy"
	"github.com/duncanmcewan/marchlands/internal/game/queue"
	"github.com/duncanmcewan/marchlands/internal/game/resource"
	"github.com/duncanmcewan/marchlands/internal/game/rules"
)

// globalQueueKey identifies the shared kingdom-wide warehouse queue in order
// ids.
const globalQueueKey = "KINGDOM"

// Dispatcher validates and applies player commands as pure transforms over
// GameState. A rejected command is a no-op: Dispatch returns the input state
// unchanged, and callers compare states to detect whether anything happened.
// The eligibility predicates are exported so UIs can derive the rejection
// reason before attempting a command.
type Dispatcher struct {
	adj      AdjacencyProvider
	resolver *TurnResolver
	starting resource.Stockpile
	logger   zerolog.Logger
}

// NewDispatcher creates a dispatcher. starting is the stockpile seeded into
// every kingdom when a game begins.
func NewDispatcher(adj AdjacencyProvider, starting resource.Stockpile, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		adj:      adj,
		resolver: NewTurnResolver(adj, logger),
		starting: starting,
		logger:   logger.With().Str("component", "dispatcher").Logger(),
	}
}

// Dispatch applies one command. It never panics and never returns an invalid
// state.
func (d *Dispatcher) Dispatch(gs GameState, cmd Command) GameState {
	next, err := d.apply(gs, cmd)
	if err != nil {
		d.logger.Debug().
			Str("command", cmd.Name()).
			Err(err).
			Msg("Command rejected")
		return gs
	}
	return next
}

func (d *Dispatcher) apply(gs GameState, cmd Command) (GameState, error) {
	switch c := cmd.(type) {
	case SelectCounty:
		return d.selectCounty(gs, c)
	case OpenSetup:
		return d.openSetup(gs)
	case BeginGame:
		return d.beginGame(gs, c)
	case ToggleFogOfWar:
		return d.toggleFlag(gs, func(s *GameState) { s.FogOfWarEnabled = !s.FogOfWarEnabled })
	case ToggleSuperhighways:
		return d.toggleFlag(gs, func(s *GameState) { s.SuperhighwaysEnabled = !s.SuperhighwaysEnabled })
	case ToggleNoConquest:
		return d.toggleFlag(gs, func(s *GameState) { s.NoConquest = !s.NoConquest })
	case QueueUpgrade:
		return d.queueUpgrade(gs, c)
	case QueueWarehouseUpgrade:
		return d.queueWarehouseUpgrade(gs)
	case QueueClaim:
		return d.queueClaim(gs, c)
	case QueueConquer:
		return d.queueConquer(gs, c)
	case CancelOrder:
		return d.cancelOrder(gs, c)
	case EndTurn:
		return d.endTurn(gs)
	case CloseTurnReport:
		return d.closeTurnReport(gs)
	default:
		return gs, ErrWrongPhase
	}
}

func (d *Dispatcher) selectCounty(gs GameState, c SelectCounty) (GameState, error) {
	if gs.Phase != PhasePlaying {
		return gs, ErrWrongPhase
	}
	if _, ok := gs.Counties[c.CountyID]; !ok {
		return gs, ErrUnknownCounty
	}
	if gs.FogOfWarEnabled && !gs.Discovered(c.CountyID) {
		return gs, ErrUnknownCounty
	}
	out := gs.Clone()
	out.SelectedCountyID = c.CountyID
	return out, nil
}

func (d *Dispatcher) openSetup(gs GameState) (GameState, error) {
	if !gs.Phase.CanTransitionTo(PhaseSetup) {
		return gs, ErrWrongPhase
	}
	out := gs.Clone()
	out.Phase = PhaseSetup
	return out, nil
}

// beginGame seeds every kingdom's ownership and stockpile, then hands the
// chosen character's kingdom to the player.
func (d *Dispatcher) beginGame(gs GameState, c BeginGame) (GameState, error) {
	if gs.Phase != PhaseSetup {
		return gs, ErrWrongPhase
	}
	var chosen *Character
	for i := range gs.Characters {
		if gs.Characters[i].ID == c.CharacterID {
			chosen = &gs.Characters[i]
			break
		}
	}
	if chosen == nil {
		return gs, ErrUnknownCharacter
	}
	playerKingdomID := ""
	for id, k := range gs.Kingdoms {
		for _, cid := range k.CountyIDs {
			if cid == chosen.StartCountyID {
				playerKingdomID = id
			}
		}
	}
	if playerKingdomID == "" {
		return gs, ErrUnknownKingdom
	}

	out := gs.Clone()
	out.PlayerFactionID = playerKingdomID
	for id, k := range out.Kingdoms {
		out.ResourcesByKingdomID[id] = d.starting.Clone()
		for _, cid := range k.CountyIDs {
			cty, ok := out.Counties[cid]
			if !ok {
				continue
			}
			cty = cty.Clone()
			cty.OwnerID = id
			if cty.RoadLevel < 1 {
				cty.RoadLevel = 1
			}
			out.Counties[cid] = cty
			if id == playerKingdomID {
				out.OwnedCountyIDs = insertSorted(out.OwnedCountyIDs, cid)
			}
		}
	}
	out.SelectedCountyID = chosen.StartCountyID
	out.DiscoveredCountyIDs = recomputeDiscovered(out, d.adj)
	out.Phase = PhasePlaying
	d.logger.Info().
		Str("character", chosen.ID).
		Str("kingdom", playerKingdomID).
		Int("counties", len(out.OwnedCountyIDs)).
		Msg("Game started")
	return out, nil
}

func (d *Dispatcher) toggleFlag(gs GameState, flip func(*GameState)) (GameState, error) {
	if gs.Phase != PhaseSetup && gs.Phase != PhasePlaying {
		return gs, ErrWrongPhase
	}
	out := gs.Clone()
	flip(&out)
	return out, nil
}

// CanQueueUpgrade is the eligibility predicate behind QueueUpgrade. It checks
// phase, ownership, the projected level against the track ceiling, building
// slots and affordability against the live (already debited) stockpile.
func (d *Dispatcher) CanQueueUpgrade(gs GameState, countyID string, track catalog.Track) error {
	if gs.Phase != PhasePlaying {
		return ErrWrongPhase
	}
	if track.IsWarehouse() {
		// The warehouse runs on the shared kingdom queue.
		return ErrUnknownOrder
	}
	cty, ok := gs.Counties[countyID]
	if !ok {
		return ErrUnknownCounty
	}
	if !gs.Owns(countyID) {
		return ErrCountyNotOwned
	}
	q := gs.BuildQueueByCountyID[countyID]
	if q.HasExclusiveOrder() {
		return ErrQueueLocked
	}
	projected := d.projectedLevel(cty, q, track)
	if projected > catalog.MaxLevel {
		return ErrTrackAtMaxLevel
	}
	if track.IsBuilding() && track.Building != catalog.Farm && projected == 1 {
		if d.committedSlots(cty, q) >= economy.CountyStats(cty).SlotsTotal {
			return ErrNoBuildingSlot
		}
	}
	cost := catalog.UpgradeCost(track, projected)
	if !gs.PlayerStockpile().CanAfford(cost) {
		return ErrInsufficientResources
	}
	return nil
}

// projectedLevel is the level an upgrade order enqueued now would build:
// current level plus increments already committed in the queue, plus one.
func (d *Dispatcher) projectedLevel(cty county.County, q queue.Queue, track catalog.Track) int {
	current := 0
	switch track.Kind {
	case catalog.KindRoads:
		current = cty.RoadLevel
	case catalog.KindBuilding:
		current = cty.BuildingLevel(track.Building)
	}
	return current + q.PendingIncrements(track) + 1
}

// committedSlots counts built non-farm buildings plus queued new ones.
func (d *Dispatcher) committedSlots(cty county.County, q queue.Queue) int {
	used := economy.CountyStats(cty).SlotsUsed
	count := func(o queue.Order) {
		if o.Kind == queue.OrderUpgrade && o.Track.IsBuilding() &&
			o.Track.Building != catalog.Farm && o.TargetLevel == 1 {
			used++
		}
	}
	if q.Active != nil {
		count(*q.Active)
	}
	for _, o := range q.Pending {
		count(o)
	}
	return used
}

func (d *Dispatcher) queueUpgrade(gs GameState, c QueueUpgrade) (GameState, error) {
	if err := d.CanQueueUpgrade(gs, c.CountyID, c.Track); err != nil {
		return gs, err
	}
	out := gs.Clone()
	cty := out.Counties[c.CountyID]
	q := out.BuildQueueByCountyID[c.CountyID]
	projected := d.projectedLevel(cty, q, c.Track)
	cost := catalog.UpgradeCost(c.Track, projected)
	order := queue.Order{
		ID:             queue.OrderID(c.CountyID, c.Track.String(), out.TurnNumber, q.PendingIncrements(c.Track)),
		Kind:           queue.OrderUpgrade,
		Track:          c.Track,
		TargetLevel:    projected,
		TurnsRemaining: catalog.UpgradeDuration(c.Track, projected),
		Cost:           cost,
		QueuedOnTurn:   out.TurnNumber,
	}
	out.BuildQueueByCountyID[c.CountyID] = q.Enqueue(order)
	out.ResourcesByKingdomID[out.PlayerFactionID] = out.PlayerStockpile().Subtract(cost)
	out.PendingOrders = append(out.PendingOrders, OrderRef{CountyID: c.CountyID, OrderID: order.ID})
	return out, nil
}

// CanQueueWarehouseUpgrade is the predicate behind QueueWarehouseUpgrade.
func (d *Dispatcher) CanQueueWarehouseUpgrade(gs GameState) error {
	if gs.Phase != PhasePlaying {
		return ErrWrongPhase
	}
	projected := gs.WarehouseLevel + gs.GlobalBuildQueue.PendingIncrements(catalog.Warehouse) + 1
	if projected > catalog.MaxLevel {
		return ErrTrackAtMaxLevel
	}
	if !gs.PlayerStockpile().CanAfford(catalog.UpgradeCost(catalog.Warehouse, projected)) {
		return ErrInsufficientResources
	}
	return nil
}

func (d *Dispatcher) queueWarehouseUpgrade(gs GameState) (GameState, error) {
	if err := d.CanQueueWarehouseUpgrade(gs); err != nil {
		return gs, err
	}
	out := gs.Clone()
	projected := out.WarehouseLevel + out.GlobalBuildQueue.PendingIncrements(catalog.Warehouse) + 1
	cost := catalog.UpgradeCost(catalog.Warehouse, projected)
	order := queue.Order{
		ID:             queue.OrderID(globalQueueKey, catalog.Warehouse.String(), out.TurnNumber, out.GlobalBuildQueue.PendingIncrements(catalog.Warehouse)),
		Kind:           queue.OrderUpgrade,
		Track:          catalog.Warehouse,
		TargetLevel:    projected,
		TurnsRemaining: catalog.UpgradeDuration(catalog.Warehouse, projected),
		Cost:           cost,
		QueuedOnTurn:   out.TurnNumber,
	}
	out.GlobalBuildQueue = out.GlobalBuildQueue.Enqueue(order)
	out.ResourcesByKingdomID[out.PlayerFactionID] = out.PlayerStockpile().Subtract(cost)
	out.PendingOrders = append(out.PendingOrders, OrderRef{OrderID: order.ID})
	return out, nil
}

// CanQueueClaim is the predicate behind QueueClaim: the target must be a
// neutral county adjacent to an owned source with enough settlers, its queue
// empty, and the claim cost affordable.
func (d *Dispatcher) CanQueueClaim(gs GameState, sourceID, targetID string) error {
	if gs.Phase != PhasePlaying {
		return ErrWrongPhase
	}
	target, ok := gs.Counties[targetID]
	if !ok {
		return ErrUnknownCounty
	}
	source, ok := gs.Counties[sourceID]
	if !ok {
		return ErrUnknownCounty
	}
	if !gs.Owns(sourceID) {
		return ErrCountyNotOwned
	}
	if !target.IsNeutral() {
		return ErrCountyNotNeutral
	}
	if !isAdjacent(d.adj, sourceID, targetID) {
		return ErrNotAdjacent
	}
	if !gs.BuildQueueByCountyID[targetID].IsEmpty() {
		return ErrQueueLocked
	}
	if !gs.PlayerStockpile().CanAfford(rules.ClaimCost()) {
		return ErrInsufficientResources
	}
	if source.Population < rules.ClaimPopulationCost {
		return ErrInsufficientPopulation
	}
	return nil
}

func (d *Dispatcher) queueClaim(gs GameState, c QueueClaim) (GameState, error) {
	if err := d.CanQueueClaim(gs, c.SourceCountyID, c.TargetCountyID); err != nil {
		return gs, err
	}
	out := gs.Clone()
	cost := rules.ClaimCost()
	order := queue.Order{
		ID:             queue.OrderID(c.TargetCountyID, queue.OrderClaim.String(), out.TurnNumber, 0),
		Kind:           queue.OrderClaim,
		TurnsRemaining: rules.ClaimDuration,
		Cost:           cost,
		PopulationCost: rules.ClaimPopulationCost,
		SourceCountyID: c.SourceCountyID,
		TargetCountyID: c.TargetCountyID,
		QueuedOnTurn:   out.TurnNumber,
	}
	out.BuildQueueByCountyID[c.TargetCountyID] = out.BuildQueueByCountyID[c.TargetCountyID].Enqueue(order)
	out.ResourcesByKingdomID[out.PlayerFactionID] = out.PlayerStockpile().Subtract(cost)
	src := out.Counties[c.SourceCountyID].Clone()
	src.Population -= rules.ClaimPopulationCost
	out.Counties[c.SourceCountyID] = src
	out.PendingOrders = append(out.PendingOrders, OrderRef{CountyID: c.TargetCountyID, OrderID: order.ID})
	return out, nil
}

// CanQueueConquer is the predicate behind QueueConquer.
func (d *Dispatcher) CanQueueConquer(gs GameState, sourceID, targetID string) error {
	if gs.Phase != PhasePlaying {
		return ErrWrongPhase
	}
	if gs.NoConquest {
		return ErrConquestDisabled
	}
	target, ok := gs.Counties[targetID]
	if !ok {
		return ErrUnknownCounty
	}
	source, ok := gs.Counties[sourceID]
	if !ok {
		return ErrUnknownCounty
	}
	if !gs.Owns(sourceID) {
		return ErrCountyNotOwned
	}
	if target.IsNeutral() || target.IsOwnedBy(gs.PlayerFactionID) {
		return ErrCountyNotEnemy
	}
	if !isAdjacent(d.adj, sourceID, targetID) {
		return ErrNotAdjacent
	}
	if !gs.BuildQueueByCountyID[targetID].IsEmpty() {
		return ErrQueueLocked
	}
	if !gs.PlayerStockpile().CanAfford(rules.ConquerCost()) {
		return ErrInsufficientResources
	}
	if source.Population < rules.ConquerPopulationCost {
		return ErrInsufficientPopulation
	}
	return nil
}

func (d *Dispatcher) queueConquer(gs GameState, c QueueConquer) (GameState, error) {
	if err := d.CanQueueConquer(gs, c.SourceCountyID, c.TargetCountyID); err != nil {
		return gs, err
	}
	out := gs.Clone()
	target := out.Counties[c.TargetCountyID]
	source := out.Counties[c.SourceCountyID]
	roadLevel := source.RoadLevel
	if out.SuperhighwaysEnabled {
		roadLevel = catalog.MaxLevel
	}
	cost := rules.ConquerCost()
	order := queue.Order{
		ID:             queue.OrderID(c.TargetCountyID, queue.OrderConquer.String(), out.TurnNumber, 0),
		Kind:           queue.OrderConquer,
		TurnsRemaining: rules.ConquerDuration(target.BuildingLevel(catalog.Palisade), roadLevel),
		Cost:           cost,
		PopulationCost: rules.ConquerPopulationCost,
		SourceCountyID: c.SourceCountyID,
		TargetCountyID: c.TargetCountyID,
		QueuedOnTurn:   out.TurnNumber,
	}
	out.BuildQueueByCountyID[c.TargetCountyID] = out.BuildQueueByCountyID[c.TargetCountyID].Enqueue(order)
	out.ResourcesByKingdomID[out.PlayerFactionID] = out.PlayerStockpile().Subtract(cost)
	src := source.Clone()
	src.Population -= rules.ConquerPopulationCost
	out.Counties[c.SourceCountyID] = src
	out.PendingOrders = append(out.PendingOrders, OrderRef{CountyID: c.TargetCountyID, OrderID: order.ID})
	return out, nil
}

// CanCancelOrder is the predicate behind CancelOrder.
func (d *Dispatcher) CanCancelOrder(gs GameState, countyID, orderID string) error {
	if gs.Phase != PhasePlaying {
		return ErrWrongPhase
	}
	q := gs.GlobalBuildQueue
	if countyID != "" {
		var ok bool
		q, ok = gs.BuildQueueByCountyID[countyID]
		if !ok {
			return ErrUnknownOrder
		}
	}
	if _, removed := q.Cancel(orderID); removed == nil {
		return ErrUnknownOrder
	}
	return nil
}

// cancelOrder removes a not-yet-completed order and refunds exactly its
// debited cost, settlers included for claim and conquest orders.
func (d *Dispatcher) cancelOrder(gs GameState, c CancelOrder) (GameState, error) {
	if err := d.CanCancelOrder(gs, c.CountyID, c.OrderID); err != nil {
		return gs, err
	}
	out := gs.Clone()
	var removed *queue.Order
	if c.CountyID == "" {
		out.GlobalBuildQueue, removed = out.GlobalBuildQueue.Cancel(c.OrderID)
	} else {
		q, r := out.BuildQueueByCountyID[c.CountyID].Cancel(c.OrderID)
		out.BuildQueueByCountyID[c.CountyID] = q
		removed = r
	}
	if removed == nil {
		return gs, ErrUnknownOrder
	}
	out.ResourcesByKingdomID[out.PlayerFactionID] = out.PlayerStockpile().Add(removed.Cost)
	if removed.PopulationCost > 0 {
		if src, ok := out.Counties[removed.SourceCountyID]; ok {
			src = src.Clone()
			src.Population += removed.PopulationCost
			out.Counties[removed.SourceCountyID] = src
		}
	}
	for i, ref := range out.PendingOrders {
		if ref.OrderID == c.OrderID {
			out.PendingOrders = append(out.PendingOrders[:i:i], out.PendingOrders[i+1:]...)
			break
		}
	}
	return out, nil
}

func (d *Dispatcher) endTurn(gs GameState) (GameState, error) {
	if gs.Phase != PhasePlaying {
		return gs, ErrWrongPhase
	}
	out, _ := d.resolver.Resolve(gs)
	out.Phase = PhaseSummary
	return out, nil
}

func (d *Dispatcher) closeTurnReport(gs GameState) (GameState, error) {
	if gs.Phase != PhaseSummary {
		return gs, ErrWrongPhase
	}
	if gs.LastTurnReport == nil {
		return gs, ErrNoTurnReport
	}
	out := gs.Clone()
	out.Phase = PhasePlaying
	return out, nil
}
