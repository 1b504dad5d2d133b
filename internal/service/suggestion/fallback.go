package suggestion

import "strings"

// fallbackRule 把出现在用户消息里的线索词映射到一段固定回复。
// 规则按优先级排列、短路求值，选择只看当前消息的表层关键词，
// 不依赖情绪分类结果。
type fallbackRule struct {
	cues     []string
	response string
}

var fallbackRules = []fallbackRule{
	{cues: []string{"motivat", "want to", "don't feel"}, response: motivationFallback},
	{cues: []string{"tired", "exhausted"}, response: tirednessFallback},
	{cues: []string{"work", "homework", "study", "assignment"}, response: workFallback},
	{cues: []string{"sad", "down", "unhappy"}, response: sadnessFallback},
	{cues: []string{"angry", "mad", "furious"}, response: angerFallback},
	{cues: []string{"anxious", "worried", "nervous", "stress"}, response: anxietyFallback},
	{cues: []string{"frustrat", "stuck", "can't"}, response: frustrationFallback},
}

// fallbackFor 为当前消息挑选兜底回复，保证总有可用的答复。
func fallbackFor(userMessage string) string {
	lower := strings.ToLower(userMessage)
	for _, rule := range fallbackRules {
		for _, cue := range rule.cues {
			if strings.Contains(lower, cue) {
				return rule.response
			}
		}
	}
	return defaultFallback
}

const motivationFallback = `I understand that feeling of wanting to do something but lacking the motivation. This is really common, and you're not alone in experiencing this.

Here are some practical steps that might help:

1. **Start tiny**: Instead of thinking about the whole task, commit to just 2-5 minutes. Often, starting is the hardest part, and once you begin, momentum can carry you forward.

2. **Connect to your "why"**: Remind yourself why this matters to you. What will you gain? How will you feel after completing it? Sometimes reconnecting with your deeper reasons can reignite motivation.

3. **Break it down**: If the task feels overwhelming, break it into the smallest possible steps. Write them down and check them off one by one - this creates a sense of progress.

4. **Change your environment**: Sometimes a change of scenery can help. Try working in a different room, going to a café, or even just moving to a different chair.

5. **Use the 5-minute rule**: Tell yourself you'll just work on it for 5 minutes, then you can stop if you want. Often, you'll find yourself continuing past the 5 minutes.

Remember, motivation often follows action, not the other way around. Be gentle with yourself - it's okay to have days when motivation is low.`

const tirednessFallback = `I hear that you're feeling tired. That can be really draining, both physically and emotionally.

Here are some things that might help:

1. **Rest without guilt**: Give yourself permission to rest. Your body and mind need recovery time, and that's completely valid.

2. **Short breaks**: Even 10-15 minutes of doing something you enjoy can help recharge your energy. Try listening to music, stepping outside, or doing a quick stretch.

3. **Check your basics**: Sometimes tiredness comes from not getting enough sleep, water, or nutrition. A small snack, some water, or a power nap might help.

4. **Gentle movement**: A short walk or some light stretching can actually boost energy more than staying still.

5. **Prioritize**: If you're feeling overwhelmed, focus on just one or two essential tasks today. It's okay to do less when you're tired.

Remember, rest is productive too. You're doing your best, and that's enough.`

const workFallback = `I understand you've been working hard, and that can be really draining. It's important to take care of yourself while managing your responsibilities.

Here are some strategies that might help:

1. **Pomodoro Technique**: Work for 25 minutes, then take a 5-minute break. After 4 cycles, take a longer 15-30 minute break. This helps prevent burnout and maintains focus.

2. **Prioritize and plan**: Make a list of what needs to be done and tackle the most important or urgent items first. Breaking tasks into smaller chunks makes them feel more manageable.

3. **Create a dedicated space**: Having a specific place for work/study can help your brain switch into "work mode" when you're there.

4. **Reward yourself**: Plan small rewards for completing tasks - a favorite snack, a short break to do something you enjoy, or time with friends.

5. **Ask for help**: If you're feeling overwhelmed, consider reaching out to teachers, classmates, or colleagues. Sometimes talking through a problem or getting a different perspective can help.

Remember, it's okay to take breaks. Your mental health is just as important as completing tasks.`

const sadnessFallback = `I'm sorry you're feeling this way. It's completely valid to feel sad sometimes, and your feelings matter.

Here are some things that might help:

1. **Gentle self-care**: Do something gentle that usually brings you comfort - listening to music, taking a warm bath, reading, or spending time with a pet.

2. **Connect with others**: Reach out to someone you trust - a friend, family member, or someone who makes you feel understood. Sometimes just talking helps.

3. **Get outside**: Even a short walk outside can help. Fresh air and a change of scenery can sometimes shift your perspective.

4. **Express yourself**: Write in a journal, create something, or find another way to express what you're feeling. Sometimes getting emotions out helps process them.

5. **Be patient with yourself**: Healing and feeling better takes time. It's okay to not be okay right now. Be as kind to yourself as you would be to a friend going through the same thing.

If these feelings persist or feel overwhelming, consider talking to a mental health professional. You deserve support.`

const angerFallback = `I can sense you're feeling angry. That's a completely valid emotion, and it's okay to feel this way.

Here are some strategies that might help:

1. **Deep breathing**: Try the 4-7-8 technique - breathe in for 4 counts, hold for 7, exhale for 8. Repeat a few times. This can help calm your nervous system.

2. **Physical release**: Sometimes anger needs a physical outlet. Try going for a walk, doing some exercise, or even just shaking your hands and body to release tension.

3. **Identify the trigger**: What specifically made you feel angry? Sometimes understanding the root cause can help you process the emotion more effectively.

4. **Write it out**: Sometimes writing down what you're feeling can help you process it. You don't have to show it to anyone - it's just for you.

5. **Give yourself space**: It's okay to step away from a situation if you need to. Taking time to cool down before responding can prevent things from escalating.

Remember, anger is often a signal that something important to you has been threatened or violated. Understanding what that is can help you address the underlying issue.`

const anxietyFallback = `I hear that you're feeling anxious. That can be really uncomfortable and overwhelming. You're not alone in this.

Here are some techniques that might help:

1. **Grounding technique (5-4-3-2-1)**: Name 5 things you can see, 4 you can touch, 3 you can hear, 2 you can smell, and 1 you can taste. This helps bring you back to the present moment.

2. **Deep breathing**: Try box breathing - inhale for 4 counts, hold for 4, exhale for 4, hold for 4. Repeat several times. This activates your body's relaxation response.

3. **Challenge anxious thoughts**: Ask yourself: "Is this thought helpful? Is it true? What's the worst that could happen, and how likely is it?" Sometimes questioning our anxious thoughts can reduce their power.

4. **Progressive muscle relaxation**: Tense and then relax each muscle group, starting from your toes and working up to your head. This can help release physical tension.

5. **Limit triggers**: If certain things (like news, social media, or specific situations) increase your anxiety, consider taking breaks from them or setting boundaries.

Remember, anxiety is your body's way of trying to protect you, even if it feels overwhelming. These feelings will pass. If anxiety is significantly impacting your daily life, consider speaking with a mental health professional.`

const frustrationFallback = `I understand the frustration. When things feel stuck or impossible, it can be really discouraging.

Here are some approaches that might help:

1. **Break it into tiny steps**: What's the absolute smallest thing you could do right now? Even if it's just opening a document or writing one sentence, small actions create momentum.

2. **Change your approach**: If one method isn't working, try a different angle. Sometimes stepping back and looking at the problem from a new perspective helps.

3. **Ask for help**: There's no shame in asking for assistance. Sometimes another person can see solutions we can't see ourselves.

4. **Take a break**: Sometimes when we're stuck, stepping away for a bit can help. When you come back, you might see things differently.

5. **Celebrate small wins**: Acknowledge any progress, no matter how small. Every step forward counts, even if it doesn't feel like much.

Remember, feeling stuck is temporary. You've overcome challenges before, and you can do it again. What's one tiny thing you could try right now?`

const defaultFallback = `Thank you for sharing that with me. I can hear that you're going through something, and I want you to know that your feelings are valid.

Here are some general suggestions that might help:

1. **Be gentle with yourself**: You're doing your best, and that's enough. It's okay to not have all the answers right now.

2. **Connect with others**: Sometimes talking to someone you trust - a friend, family member, or professional - can provide support and perspective.

3. **Take it one step at a time**: You don't have to solve everything at once. Focus on what you can do right now, in this moment.

4. **Practice self-compassion**: Treat yourself with the same kindness and understanding you would offer a friend in a similar situation.

5. **Remember this is temporary**: Feelings change, and difficult times pass. You've gotten through challenges before, and you can get through this too.

I'm here to listen. Would you like to share more about what's on your mind? Sometimes talking through things can help us see them from a different perspective.`
