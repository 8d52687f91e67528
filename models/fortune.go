package models

// CoffeeReading is one Beanjahmon fortune, drawn at random after a paid
// reading. Images resolve against the front-end's asset bundle.
type CoffeeReading struct {
	ID    int    `json:"id"`
	Image string `json:"image"`
	Text  string `json:"text"`
}

// CoffeeReadings is the fortune table. Static content, same as the
// front-end's copy, so both sides show the same readings.
var CoffeeReadings = []CoffeeReading{
	{ID: 1, Image: "bean-01.png", Text: "Your plans today will brew faster than your brain can sip. Ride the swirl, avoid spreadsheets."},
	{ID: 2, Image: "bean-02.png", Text: "You'll say 'yes' to something dumb, then pretend it was fate. Spoiler: it kind of was."},
	{ID: 3, Image: "bean-03.png", Text: "Someone's thinking of you. Probably a barista. Probably because you forgot to tip."},
	{ID: 4, Image: "bean-04.png", Text: "A message arrives in liquid form. Could be coffee, could be rain, could be tears of joy."},
	{ID: 5, Image: "bean-05.png", Text: "The beans show a path diverging. Take the one with more caffeine."},
	{ID: 6, Image: "bean-06.png", Text: "Your next big idea will come while waiting for water to boil. Keep a pen handy."},
	{ID: 7, Image: "bean-07.png", Text: "Someone will ask for your advice today. Give it with the confidence of an over-caffeinated squirrel."},
	{ID: 8, Image: "bean-08.png", Text: "The universe has a joke planned for you. The punchline involves your favorite mug."},
	{ID: 9, Image: "bean-09.png", Text: "A forgotten connection will resurface. They still owe you that $5 from 2018."},
	{ID: 10, Image: "bean-10.png", Text: "Your lucky number today is the same as how many cups of coffee it takes you to feel human."},
	{ID: 11, Image: "bean-11.png", Text: "The thing you've been putting off? It's not going away. But it will be easier with caffeine."},
	{ID: 12, Image: "bean-12.png", Text: "A small act of kindness will ripple outward today. Possibly because you'll be less grumpy after coffee."},
	{ID: 13, Image: "bean-13.png", Text: "The opportunity you've been waiting for is disguised as hard work. How inconvenient."},
	{ID: 14, Image: "bean-14.png", Text: "Your next brilliant idea will come in the shower. Or while staring at your coffee. Same energy."},
	{ID: 15, Image: "bean-15.png", Text: "Someone will compliment you today. Accept it like you would a perfectly brewed cup - with gratitude."},
	{ID: 16, Image: "bean-16.png", Text: "The beans reveal a pattern of procrastination. But also, great taste in coffee, so it balances out."},
	{ID: 17, Image: "bean-17.png", Text: "A door closes, a window opens, and somewhere a barista calls out a name that isn't yours."},
	{ID: 18, Image: "bean-18.png", Text: "Your next big purchase will bring joy. Especially if it's coffee-related."},
	{ID: 19, Image: "bean-19.png", Text: "The beans suggest it's time to try something new. Not decaf though. Never decaf."},
	{ID: 20, Image: "bean-20.png", Text: "A message from your future self: 'Thank you for drinking water between coffees today.'"},
	{ID: 21, Image: "bean-21.png", Text: "The answer you seek is yes. Unless the question is 'Should I stop at just one cup?'"},
	{ID: 22, Image: "bean-22.png", Text: "Your creative energy peaks with your caffeine levels. Plan accordingly."},
	{ID: 23, Image: "bean-23.png", Text: "The beans form a heart. Not because they love you, but because your blood pressure could use monitoring."},
	{ID: 24, Image: "bean-24.png", Text: "A surprise awaits in your inbox. Probably a newsletter you forgot you subscribed to."},
	{ID: 25, Image: "bean-25.png", Text: "Today's mantra: 'I am exactly where I need to be.' Unless you're out of coffee, then you need to be at the store."},
	{ID: 26, Image: "bean-26.png", Text: "The beans whisper of financial gain. Possibly from that $6 you'll save by making coffee at home."},
	{ID: 27, Image: "bean-27.png", Text: "Your patience will be tested today. The universe suggests having coffee first."},
	{ID: 28, Image: "bean-28.png", Text: "A forgotten dream resurfaces. Possibly because you finally got enough caffeine to remember it."},
	{ID: 29, Image: "bean-29.png", Text: "The path of least resistance leads to mediocre coffee. Choose wisely."},
	{ID: 30, Image: "bean-30.png", Text: "Your next great conversation starts with a shared eye-roll. Possibly about this coffee reading."},
	{ID: 31, Image: "bean-31.png", Text: "The beans form a question mark. Even they can't believe what you're planning to do today."},
	{ID: 32, Image: "bean-32.png", Text: "A cycle completes, another begins. Much like your coffee addiction."},
	{ID: 33, Image: "bean-33.png", Text: "One thing will matter more than the others today. You'll know it when you sip."},
}
