package bootstrap

import (
	"github.com/Super-Badmen-Viper/PitchPlease/mongo"
	"github.com/Super-Badmen-Viper/PitchPlease/storage"
)

type Application struct {
	Env   *Env
	Mongo mongo.Client
	Store *storage.Store
}

func App() Application {
	app := &Application{}
	app.Env = NewEnv()
	switch app.Env.StorageDriver {
	case "mongo":
		app.Mongo = NewMongoDatabase(app.Env)
	default:
		app.Store = NewLocalStore(app.Env)
	}
	return *app
}

func (app *Application) CloseDBConnection() {
	if app.Mongo != nil {
		CloseMongoDBConnection(app.Mongo)
	}
	if app.Store != nil {
		CloseLocalStore(app.Store)
	}
}
