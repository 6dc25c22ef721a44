package bootstrap

import (
	"log"

	"github.com/Super-Badmen-Viper/PitchPlease/storage"
)

func NewLocalStore(env *Env) *storage.Store {
	store, err := storage.Open(env.LocalStoragePath)
	if err != nil {
		log.Fatal("Can't open local store: ", err)
	}
	return store
}

func CloseLocalStore(store *storage.Store) {
	if store == nil {
		return
	}
	if err := store.Close(); err != nil {
		log.Println("Error closing local store: ", err)
	}
}
