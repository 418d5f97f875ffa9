package core

import (
	"periphsim-go/bus"
	"periphsim-go/types"
)

// sim/<kind>/<id>/...
func devBase(kind types.Kind, id string) bus.Topic { return bus.T("sim", string(kind), id) }

func TopicInfo(kind types.Kind, id string) bus.Topic  { return devBase(kind, id).Append("info") }
func TopicValue(kind types.Kind, id string) bus.Topic { return devBase(kind, id).Append("value") }

// sim/state
func TopicState() bus.Topic { return bus.T("sim", "state") }
