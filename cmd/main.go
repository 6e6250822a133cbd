package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"foodtruck-storefront/internal/api"
	"foodtruck-storefront/internal/config"
	"foodtruck-storefront/internal/logger"
	"foodtruck-storefront/internal/models"
	"foodtruck-storefront/internal/services/cart"
	"foodtruck-storefront/internal/services/checkout"
	"foodtruck-storefront/internal/services/tracking"
)

func main() {
	// Parse command line flags
	var (
		mode       = flag.String("mode", "", "Client mode (menu, order, track, orders)")
		configPath = flag.String("config", "config.yaml", "Path to config file")
		truckID    = flag.Int("truck", 0, "Truck id (required for menu, order, orders modes)")
		items      = flag.String("items", "", "Comma-separated item specs: ID[@SIZE][+OPT...][xQTY]")
		name       = flag.String("name", "", "Customer name (required for order mode)")
		phone      = flag.String("phone", "", "Customer phone (required for order mode)")
		token      = flag.String("payment-token", "tok_visa", "Opaque payment token")
		code       = flag.String("code", "", "Tracking code (required for track mode)")
	)
	flag.Parse()

	// Validate required mode flag
	if *mode == "" {
		fmt.Fprintf(os.Stderr, "Error: --mode flag is required\n")
		flag.Usage()
		os.Exit(1)
	}

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Create logger
	log := logger.New(*mode)
	requestID := logger.GenerateRequestID()

	// Set up graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("graceful_shutdown", "Received shutdown signal", requestID, nil)
		cancel()
	}()

	client := api.New(cfg, log)

	// Route to the selected mode
	switch *mode {
	case "menu":
		if err := runMenu(ctx, client, *truckID); err != nil {
			log.Error("mode_failed", "Menu mode failed", requestID, err, nil)
			os.Exit(1)
		}
	case "order":
		contact := checkout.ContactInfo{
			CustomerName:  *name,
			CustomerPhone: *phone,
			PaymentToken:  *token,
		}
		if err := runOrder(ctx, client, log, *truckID, *items, contact); err != nil {
			log.Error("mode_failed", "Order mode failed", requestID, err, nil)
			os.Exit(1)
		}
	case "track":
		if *code == "" {
			log.Error("validation_failed", "code is required for track mode", requestID, nil, nil)
			os.Exit(1)
		}
		if err := runTrack(ctx, client, log, cfg, *code); err != nil {
			log.Error("mode_failed", "Track mode failed", requestID, err, nil)
			os.Exit(1)
		}
	case "orders":
		if err := runOrders(ctx, client, *truckID); err != nil {
			log.Error("mode_failed", "Orders mode failed", requestID, err, nil)
			os.Exit(1)
		}
	default:
		log.Error("validation_failed", fmt.Sprintf("Unknown mode: %s", *mode), requestID, nil, nil)
		os.Exit(1)
	}
}

// runMenu prints a truck's menu snapshot
func runMenu(ctx context.Context, client *api.Client, truckID int) error {
	if truckID == 0 {
		return fmt.Errorf("truck id is required")
	}

	truck, err := client.GetTruck(ctx, truckID)
	if err != nil {
		return err
	}

	fmt.Printf("%s\n%s\n", truck.Name, truck.Description)
	for _, category := range truck.MenuCategories {
		fmt.Printf("\n== %s ==\n", category.Name)
		for _, item := range category.MenuItems {
			marker := ""
			if len(item.Sizes) > 0 {
				marker = "+"
			}
			availability := ""
			if !item.IsAvailable {
				availability = " (unavailable)"
			}
			fmt.Printf("  [%d] %s - $%.2f%s%s\n", item.ID, item.Name, item.Price, marker, availability)
			if item.Description != "" {
				fmt.Printf("      %s\n", item.Description)
			}
			for _, size := range item.Sizes {
				fmt.Printf("      size @%d %s $%.2f\n", size.ID, size.Name, size.Price)
			}
			for _, option := range item.Options {
				fmt.Printf("      option +%d %s (%s) +$%.2f\n", option.ID, option.Name, option.Section, option.Price)
			}
		}
	}

	return nil
}

// runOrder assembles a cart from item specs and submits it
func runOrder(ctx context.Context, client *api.Client, log *logger.Logger, truckID int, items string, contact checkout.ContactInfo) error {
	if truckID == 0 {
		return fmt.Errorf("truck id is required")
	}
	if items == "" {
		return fmt.Errorf("items are required")
	}

	specs, err := parseItemSpecs(items)
	if err != nil {
		return err
	}

	truck, err := client.GetTruck(ctx, truckID)
	if err != nil {
		return err
	}

	c := cart.New()
	for _, spec := range specs {
		if err := addSpecToCart(c, truck, spec); err != nil {
			return err
		}
	}

	fmt.Println("Order summary:")
	for _, line := range c.Lines() {
		label := line.Label()
		if names := line.OptionNames(); len(names) > 0 {
			label += " + " + strings.Join(names, ", ")
		}
		fmt.Printf("  %dx %s  $%.2f\n", line.Quantity, label, line.UnitPrice()*float64(line.Quantity))
	}
	fmt.Printf("Total: $%.2f\n", c.TotalPrice())

	service := checkout.NewService(client, log)
	result, err := service.Submit(ctx, truckID, c, contact)
	if err != nil {
		return err
	}
	c.Clear()

	fmt.Printf("Order #%d placed. Tracking code: %s\n", result.ID, result.TrackingCode)
	fmt.Printf("Follow it with: -mode track -code %s\n", result.TrackingCode)
	return nil
}

// runTrack polls an order until it completes or the context is cancelled
func runTrack(ctx context.Context, client *api.Client, log *logger.Logger, cfg *config.Config, code string) error {
	trackCtx, stop := context.WithCancel(ctx)
	defer stop()

	tracker := tracking.New(client, log, cfg.PollInterval())

	printedItems := false
	for update := range tracker.Track(trackCtx, code) {
		if update.Err != nil {
			fmt.Printf("  (fetch failed: %v, retrying)\n", update.Err)
			continue
		}

		order := update.Order
		if !printedItems {
			fmt.Printf("Order #%d for %s - total $%.2f\n", order.ID, order.CustomerName, order.TotalAmount)
			for _, item := range order.Items {
				fmt.Printf("  %dx %s  $%.2f\n", item.Quantity, item.ItemName, item.Price*float64(item.Quantity))
			}
			printedItems = true
		}

		fmt.Printf("Status: %s %s\n", renderStages(update.Stage), order.Status)

		if order.Status == models.StatusCompleted {
			stop()
		}
	}

	return nil
}

// runOrders lists a truck's orders (vendor side)
func runOrders(ctx context.Context, client *api.Client, truckID int) error {
	if truckID == 0 {
		return fmt.Errorf("truck id is required")
	}

	orders, err := client.ListTruckOrders(ctx, truckID)
	if err != nil {
		return err
	}

	if len(orders) == 0 {
		fmt.Println("No orders yet.")
		return nil
	}

	for _, order := range orders {
		fmt.Printf("#%d  %-10s  $%7.2f  %s  %s\n",
			order.ID, order.Status, order.TotalAmount,
			order.CreatedAt.Format("2006-01-02 15:04"), order.CustomerName)
	}
	return nil
}

// renderStages draws the progress bar position for a stage index
func renderStages(stage int) string {
	var b strings.Builder
	b.WriteByte('[')
	for i := range models.ProgressStages {
		if i <= stage {
			b.WriteByte('#')
		} else {
			b.WriteByte('-')
		}
	}
	b.WriteByte(']')
	return b.String()
}

// itemSpec is one parsed -items entry: ID[@SIZE][+OPT...][xQTY]
type itemSpec struct {
	itemID    int
	sizeID    *int
	optionIDs []int
	quantity  int
}

func parseItemSpecs(input string) ([]itemSpec, error) {
	var specs []itemSpec
	for _, raw := range strings.Split(input, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		spec, err := parseItemSpec(raw)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	if len(specs) == 0 {
		return nil, fmt.Errorf("no item specs in %q", input)
	}
	return specs, nil
}

func parseItemSpec(raw string) (itemSpec, error) {
	spec := itemSpec{quantity: 1}
	rest := raw

	// Quantity suffix
	if i := strings.LastIndex(rest, "x"); i >= 0 {
		quantity, err := strconv.Atoi(rest[i+1:])
		if err != nil {
			return spec, fmt.Errorf("invalid quantity in item spec %q: %w", raw, err)
		}
		spec.quantity = quantity
		rest = rest[:i]
	}

	// Option ids
	parts := strings.Split(rest, "+")
	for _, part := range parts[1:] {
		optionID, err := strconv.Atoi(part)
		if err != nil {
			return spec, fmt.Errorf("invalid option id in item spec %q: %w", raw, err)
		}
		spec.optionIDs = append(spec.optionIDs, optionID)
	}
	rest = parts[0]

	// Size id
	if i := strings.Index(rest, "@"); i >= 0 {
		sizeID, err := strconv.Atoi(rest[i+1:])
		if err != nil {
			return spec, fmt.Errorf("invalid size id in item spec %q: %w", raw, err)
		}
		spec.sizeID = &sizeID
		rest = rest[:i]
	}

	itemID, err := strconv.Atoi(rest)
	if err != nil {
		return spec, fmt.Errorf("invalid item id in item spec %q: %w", raw, err)
	}
	spec.itemID = itemID

	return spec, nil
}

// addSpecToCart resolves one spec against the menu snapshot and puts it in
// the cart. Customizable items go through the customization flow so size
// defaulting and stale-id handling apply.
func addSpecToCart(c *cart.Cart, truck *models.Truck, spec itemSpec) error {
	item, ok := truck.FindMenuItem(spec.itemID)
	if !ok {
		return fmt.Errorf("menu item %d not found on truck %d", spec.itemID, truck.ID)
	}

	if !cart.RequiresCustomization(item) {
		c.Add(item, spec.quantity, nil, nil)
		return nil
	}

	p := cart.NewCustomization(item)
	if spec.sizeID != nil {
		p.SelectSize(*spec.sizeID)
	}
	for _, optionID := range spec.optionIDs {
		p.ToggleOption(optionID)
	}

	line := p.Confirm(c)
	if line != nil && spec.quantity > 1 {
		c.Add(line.Item, spec.quantity-1, line.Size, line.Options)
	}
	return nil
}
