package plugin

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"gocalc/internal/config"
	"gocalc/internal/console"
	"gocalc/internal/core"
	"gocalc/internal/storage"
)

// Deps - зависимости, которые получает фабрика плагина.
type Deps struct {
	Console *console.Console
	History storage.HistoryStore
	Config  config.Config
	Log     *slog.Logger
	Catalog *Catalog
}

// Factory создает команду плагина.
type Factory func(deps Deps) (core.Command, error)

// Descriptor описывает плагин: одно имя - одна команда.
type Descriptor struct {
	Name    string
	Summary string
	New     Factory
}

// Catalog - статический список плагинов, собранный при сборке.
type Catalog struct {
	mu      sync.Mutex
	plugins map[string]Descriptor
}

// NewCatalog создает пустой каталог.
func NewCatalog() *Catalog {
	return &Catalog{plugins: make(map[string]Descriptor)}
}

// Default наполняется плагинами из их init().
var Default = NewCatalog()

// Register добавляет плагин в каталог. Пустое имя, nil-фабрика или повтор
// имени - ошибка программиста, поэтому вызывает panic.
func (c *Catalog) Register(d Descriptor) {
	if d.Name == "" {
		panic("plugin: Register with empty name")
	}
	if d.New == nil {
		panic(fmt.Sprintf("plugin: Register %s with nil factory", d.Name))
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, dup := c.plugins[d.Name]; dup {
		panic(fmt.Sprintf("plugin: Register called twice for %s", d.Name))
	}
	c.plugins[d.Name] = d
}

// Descriptors возвращает плагины, отсортированные по имени.
func (c *Catalog) Descriptors() []Descriptor {
	c.mu.Lock()
	defer c.mu.Unlock()
	list := make([]Descriptor, 0, len(c.plugins))
	for _, d := range c.plugins {
		list = append(list, d)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}

// Register добавляет плагин в Default.
func Register(d Descriptor) { Default.Register(d) }
