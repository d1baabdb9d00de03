package feature

/*
Outcome pairs the two features that describe a subject's survival
outcome: the observed time and the event indicator telling whether
that time is an actual event (1) or a right-censored observation (0).
*/
type Outcome struct {
	Time  Feature
	Event Feature
}

/*
NewOutcome takes the names for the time and event columns and returns
an Outcome built with an expression feature for the time and an
indicator feature for the event.
*/
func NewOutcome(timeName, eventName string) Outcome {
	return Outcome{
		Time:  NewExpressionFeature(timeName),
		Event: NewIndicatorFeature(eventName),
	}
}
