package main

import (
	"fmt"
	"log"
	"time"

	"github.com/quickshot/quickshot/pkg/detector"
	"github.com/quickshot/quickshot/pkg/utils"
)

func main() {
	fmt.Println("Window Locator Watch")
	fmt.Println("====================")

	engine, err := detector.NewEngine()
	if err != nil {
		log.Fatalf("Failed to create locator: %v", err)
	}
	locator := engine.Locator()
	defer locator.Close()

	fmt.Printf("\nDisplay Server: %s\n", locator.GetDisplayServer())
	fmt.Printf("Is Available: %v\n", locator.IsAvailable())
	fmt.Printf("Strategies: %v\n\n", engine.Strategies())

	fmt.Println("Watching the focused window for 30 seconds...")
	fmt.Println("Switch between windows to check the reported geometry")
	fmt.Println()

	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	timeout := time.After(30 * time.Second)
	count := 0

	for {
		select {
		case <-timeout:
			fmt.Println("\nWatch completed!")
			return

		case <-ticker.C:
			count++
			info, err := locator.ActiveWindow()
			if err != nil {
				log.Printf("[%d] Error: %v", count, err)
				continue
			}

			if info == nil {
				log.Printf("[%d] No focused window", count)
				continue
			}

			fmt.Printf("[%d] ID: 0x%-8x | Title: %-40s | Rect: %-28s | Display: %s\n",
				count,
				info.ID,
				utils.Truncate(info.Title, 40),
				info.Rect,
				info.DisplayServer,
			)
			if info.Rect.Empty() {
				fmt.Println("     Geometry is empty; a capture would be refused")
			}
		}
	}
}
